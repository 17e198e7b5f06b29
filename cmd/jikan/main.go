// Jikan is a command-line client for the Jikan v4 anime and manga API.
//
// Every request passes through a composite client-side rate limiter that
// honors the public API limits, so batch commands and the poller never
// trip upstream 429s.
//
// Usage:
//
//	# Look up anime by MyAnimeList id
//	jikan anime 1 5114 9253
//
//	# Search manga and print JSON
//	jikan search manga "monster" --output json
//
//	# This week's Monday schedule
//	jikan schedule monday
//
//	# Run the configured poll jobs with metrics and health endpoints
//	jikan poll --config jikan.yaml
//
//	# Show the effective rate windows
//	jikan limits
package main

func main() {
	Execute()
}
