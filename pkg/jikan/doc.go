// Package jikan is a client for the Jikan v4 REST API (an unofficial
// MyAnimeList API).
//
// Jikan enforces several rate windows at once (by default one request per
// 300ms, three per second and four per four seconds). Every request that
// reaches the network is admitted by a ratelimit.Chain built from those
// windows, so a Client can be shared by any number of goroutines without
// tripping the server's quota:
//
//	client, err := jikan.New()
//	if err != nil {
//	    return err
//	}
//	anime, err := client.GetAnime(ctx, 1)
//
// Parameters are validated before any permit is spent; violations are
// returned as *guard.ValidationError. Responses can be cached (see package
// cache) and cache hits do not consume permits.
//
// Requests are attempted once. A 429 surfaces as *RateLimitError, a 404 as
// *NotFoundError, other statuses as *APIError and undecodable bodies as
// *ParseError.
package jikan
