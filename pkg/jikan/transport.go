package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"mercator-hq/jikan/pkg/cache"
	"mercator-hq/jikan/pkg/limits/ratelimit"
	"mercator-hq/jikan/pkg/telemetry/logging"
	"mercator-hq/jikan/pkg/telemetry/tracing"
)

// maxRawResponse bounds the body kept on a ParseError.
const maxRawResponse = 512

// errorBody is the JSON body Jikan sends with error statuses.
type errorBody struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	ReportURL string `json:"report_url"`
}

// get fetches path under the base URL and decodes the body into out.
//
// The sequence is: cache lookup, then (on a miss) one HTTP attempt admitted
// by the limiter, then decode. Errors from the work surface unchanged
// through every limiter layer.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	ctx, requestID := logging.EnsureRequestID(ctx)
	ctx = logging.WithEndpoint(ctx, endpoint)

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "jikan."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(tracing.RequestAttributes(endpoint, http.MethodGet, u, requestID)...),
	)
	defer span.End()
	if traceID := tracing.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
	}

	key := cache.Key(http.MethodGet, u)
	if body, ok := c.cacheGet(ctx, key); ok {
		tracing.SetCacheHit(span, true)
		if err := c.decode(endpoint, body, out); err != nil {
			// A corrupt entry is dropped and the request goes to the network.
			c.logger.WarnContext(ctx, "discarding undecodable cache entry", "error", err)
			_ = c.cache.Delete(ctx, key)
		} else {
			c.logger.DebugContext(ctx, "served from cache", "url", u)
			return nil
		}
	}
	tracing.SetCacheHit(span, false)

	body, err := ratelimit.Do(ctx, c.limiter, func(ctx context.Context) ([]byte, error) {
		span.AddEvent("ratelimit.admitted")
		return c.fetch(ctx, endpoint, u, span)
	})
	if err != nil {
		c.metrics.RecordError(endpoint, errorType(err))
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		c.logger.DebugContext(ctx, "request failed", "url", u, "error", err)
		return err
	}

	if err := c.decode(endpoint, body, out); err != nil {
		c.metrics.RecordError(endpoint, errorType(err))
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		return err
	}

	c.cacheSet(ctx, key, body)
	tracing.SetStatus(span, nil)
	return nil
}

// fetch performs a single GET. It returns the body of a 2xx response and a
// typed error for everything else.
func (c *Client) fetch(ctx context.Context, endpoint, u string, span trace.Span) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "sending request", "url", u)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := &RequestError{Endpoint: endpoint, URL: u, Cause: err}
		c.metrics.RecordRequest(endpoint, "error", time.Since(start), 0)
		if ctx.Err() == nil {
			c.recordOutcome(false, true, reqErr)
		}
		return nil, reqErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		reqErr := &RequestError{Endpoint: endpoint, URL: u, Cause: fmt.Errorf("failed to read response: %w", err)}
		c.metrics.RecordRequest(endpoint, "error", duration, 0)
		c.recordOutcome(false, true, reqErr)
		return nil, reqErr
	}

	c.metrics.RecordRequest(endpoint, strconv.Itoa(resp.StatusCode), duration, len(body))
	tracing.SetResponse(span, resp.StatusCode)

	c.logger.DebugContext(ctx, "received response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", duration,
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.recordOutcome(true, false, nil)
		return body, nil
	}

	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	var apiErr error
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr = &RateLimitError{
			Endpoint:   endpoint,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    firstNonEmpty(eb.Message, string(body)),
		}
		c.logger.WarnContext(ctx, "rate limited by Jikan despite local throttling",
			"retry_after", resp.Header.Get("Retry-After"),
		)
		c.recordOutcome(false, true, apiErr)

	case resp.StatusCode == http.StatusNotFound:
		apiErr = &NotFoundError{Endpoint: endpoint, URL: u}
		c.recordOutcome(false, false, nil)

	default:
		e := &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Type:       eb.Type,
			Message:    eb.Message,
			Detail:     eb.Error,
			ReportURL:  eb.ReportURL,
		}
		apiErr = e
		c.recordOutcome(false, e.Temporary(), e)
	}

	return nil, apiErr
}

func (c *Client) decode(endpoint string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		raw := string(body)
		if len(raw) > maxRawResponse {
			raw = raw[:maxRawResponse]
		}
		return &ParseError{Endpoint: endpoint, RawResponse: raw, Cause: err}
	}
	return nil
}

// cacheGet never fails the request; backend errors are logged as misses.
func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed", "backend", c.cache.Name(), "error", err)
		return nil, false
	}
	if c.cache.Name() != cache.BackendNone {
		if ok {
			c.metrics.RecordCacheHit(c.cache.Name())
		} else {
			c.metrics.RecordCacheMiss(c.cache.Name())
		}
	}
	return body, ok
}

func (c *Client) cacheSet(ctx context.Context, key string, body []byte) {
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "backend", c.cache.Name(), "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
