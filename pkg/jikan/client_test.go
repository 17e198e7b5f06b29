package jikan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"

	"mercator-hq/jikan/pkg/cache"
	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/jikan/guard"
	"mercator-hq/jikan/pkg/limits/ratelimit"
	"mercator-hq/jikan/pkg/telemetry/metrics"
	"mercator-hq/jikan/pkg/telemetry/tracing"
)

const animeBody = `{"data":{"mal_id":1,"title":"Cowboy Bebop","type":"TV","episodes":26}}`

// countingLimiter counts admissions and otherwise runs work directly.
type countingLimiter struct {
	calls atomic.Int32
}

func (l *countingLimiter) Limit(ctx context.Context, work ratelimit.Work) error {
	l.calls.Add(1)
	return work(ctx)
}

// fakeAPI is a test server that counts hits and records the last request.
type fakeAPI struct {
	*httptest.Server
	hits atomic.Int32

	mu   sync.Mutex
	last *http.Request
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.hits.Add(1)
		api.mu.Lock()
		api.last = r
		api.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) lastRequest() *http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) *Client {
	t.Helper()
	base := []Option{WithBaseURL(api.URL), WithWindows()}
	c, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_GetAnime(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	c := newTestClient(t, api, WithUserAgent("jikan-test/1.0"))

	anime, err := c.GetAnime(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetAnime failed: %v", err)
	}
	if anime.MalID != 1 || anime.Title != "Cowboy Bebop" {
		t.Errorf("Unexpected anime: %+v", anime)
	}
	if anime.Episodes == nil || *anime.Episodes != 26 {
		t.Errorf("Expected 26 episodes, got %v", anime.Episodes)
	}

	req := api.lastRequest()
	if req.URL.Path != "/anime/1" {
		t.Errorf("Expected path /anime/1, got %s", req.URL.Path)
	}
	if req.Header.Get("User-Agent") != "jikan-test/1.0" {
		t.Errorf("Expected user agent header, got %q", req.Header.Get("User-Agent"))
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("Expected Accept: application/json, got %q", req.Header.Get("Accept"))
	}
}

func TestClient_Endpoints(t *testing.T) {
	page := `{"pagination":{"last_visible_page":1,"has_next_page":false},"data":[]}`

	tests := []struct {
		name      string
		call      func(c *Client) error
		wantPath  string
		wantQuery string
		body      string
	}{
		{
			name:     "manga",
			call:     func(c *Client) error { _, err := c.GetManga(context.Background(), 2); return err },
			wantPath: "/manga/2",
			body:     `{"data":{"mal_id":2,"title":"Berserk"}}`,
		},
		{
			name:     "characters",
			call:     func(c *Client) error { _, err := c.GetAnimeCharacters(context.Background(), 1); return err },
			wantPath: "/anime/1/characters",
			body:     `{"data":[]}`,
		},
		{
			name: "search anime",
			call: func(c *Client) error {
				_, err := c.SearchAnime(context.Background(), SearchQuery{Query: "bebop", Page: 2, Limit: 5, Type: "TV", OrderBy: "score", Sort: "desc"})
				return err
			},
			wantPath:  "/anime",
			wantQuery: "limit=5&order_by=score&page=2&q=bebop&sort=desc&type=tv",
			body:      page,
		},
		{
			name: "search manga",
			call: func(c *Client) error {
				_, err := c.SearchManga(context.Background(), SearchQuery{Query: "berserk", Status: "publishing"})
				return err
			},
			wantPath:  "/manga",
			wantQuery: "q=berserk&status=publishing",
			body:      page,
		},
		{
			name:      "top anime",
			call:      func(c *Client) error { _, err := c.GetTopAnime(context.Background(), 3); return err },
			wantPath:  "/top/anime",
			wantQuery: "page=3",
			body:      page,
		},
		{
			name:      "schedules for a day",
			call:      func(c *Client) error { _, err := c.GetSchedules(context.Background(), "Monday", 1); return err },
			wantPath:  "/schedules",
			wantQuery: "filter=monday&page=1",
			body:      page,
		},
		{
			name:      "schedules for the week",
			call:      func(c *Client) error { _, err := c.GetSchedules(context.Background(), "", 1); return err },
			wantPath:  "/schedules",
			wantQuery: "page=1",
			body:      page,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, respond(http.StatusOK, tt.body))
			c := newTestClient(t, api)

			if err := tt.call(c); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			req := api.lastRequest()
			if req.URL.Path != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, req.URL.Path)
			}
			if req.URL.RawQuery != tt.wantQuery {
				t.Errorf("Expected query %q, got %q", tt.wantQuery, req.URL.RawQuery)
			}
		})
	}
}

func TestClient_ValidationSpendsNothing(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	limiter := &countingLimiter{}
	c := newTestClient(t, api, WithLimiter(limiter))
	ctx := context.Background()

	calls := map[string]func() error{
		"anime id":       func() error { _, err := c.GetAnime(ctx, 0); return err },
		"manga id":       func() error { _, err := c.GetManga(ctx, -1); return err },
		"characters id":  func() error { _, err := c.GetAnimeCharacters(ctx, 0); return err },
		"short query":    func() error { _, err := c.SearchAnime(ctx, SearchQuery{Query: "ab"}); return err },
		"limit too high": func() error { _, err := c.SearchAnime(ctx, SearchQuery{Limit: 26}); return err },
		"bad type":       func() error { _, err := c.SearchManga(ctx, SearchQuery{Type: "tv"}); return err },
		"bad sort":       func() error { _, err := c.SearchAnime(ctx, SearchQuery{Sort: "up"}); return err },
		"top page":       func() error { _, err := c.GetTopAnime(ctx, 0); return err },
		"schedule day":   func() error { _, err := c.GetSchedules(ctx, "someday", 1); return err },
		"schedule page":  func() error { _, err := c.GetSchedules(ctx, "monday", 0); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var ve *guard.ValidationError
			if err := call(); !errors.As(err, &ve) {
				t.Fatalf("Expected *guard.ValidationError, got %v", err)
			}
		})
	}

	if api.hits.Load() != 0 {
		t.Errorf("Expected no requests, got %d", api.hits.Load())
	}
	if limiter.calls.Load() != 0 {
		t.Errorf("Expected no permits used, got %d", limiter.calls.Load())
	}
}

func TestClient_EveryRequestPassesLimiter(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	limiter := &countingLimiter{}
	c := newTestClient(t, api, WithLimiter(limiter))

	for i := 1; i <= 5; i++ {
		if _, err := c.GetAnime(context.Background(), i); err != nil {
			t.Fatalf("GetAnime failed: %v", err)
		}
	}
	if limiter.calls.Load() != 5 || api.hits.Load() != 5 {
		t.Errorf("Expected 5 admissions and 5 requests, got %d and %d", limiter.calls.Load(), api.hits.Load())
	}
}

func TestClient_CacheHitSkipsLimiter(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	limiter := &countingLimiter{}
	c := newTestClient(t, api, WithLimiter(limiter), WithCache(cache.NewMemory(10)))

	for i := 0; i < 3; i++ {
		anime, err := c.GetAnime(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetAnime failed: %v", err)
		}
		if anime.Title != "Cowboy Bebop" {
			t.Errorf("Unexpected title from call %d: %q", i, anime.Title)
		}
	}
	if api.hits.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", api.hits.Load())
	}
	if limiter.calls.Load() != 1 {
		t.Errorf("Expected 1 admission, got %d", limiter.calls.Load())
	}
}

func TestClient_ErrorsAreNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			respond(http.StatusInternalServerError, `{"status":500,"type":"UpstreamException","message":"upstream down"}`)(w, r)
			return
		}
		respond(http.StatusOK, animeBody)(w, r)
	})
	c := newTestClient(t, api, WithCache(cache.NewMemory(10)))

	if _, err := c.GetAnime(context.Background(), 1); err == nil {
		t.Fatal("Expected error from 500")
	}
	fail.Store(false)
	if _, err := c.GetAnime(context.Background(), 1); err != nil {
		t.Fatalf("Expected fresh request to succeed, got %v", err)
	}
	if api.hits.Load() != 2 {
		t.Errorf("Expected 2 requests, got %d", api.hits.Load())
	}
}

func TestClient_CorruptCacheEntryIsRefetched(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	backend := cache.NewMemory(10)
	c := newTestClient(t, api, WithCache(backend))

	key := cache.Key(http.MethodGet, api.URL+"/anime/1")
	_ = backend.Set(context.Background(), key, []byte("{not json"), time.Minute)

	anime, err := c.GetAnime(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetAnime failed: %v", err)
	}
	if anime.Title != "Cowboy Bebop" || api.hits.Load() != 1 {
		t.Errorf("Expected refetch, got %q after %d hits", anime.Title, api.hits.Load())
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "429",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "2")
				respond(http.StatusTooManyRequests, `{"status":429,"type":"RateLimitException","message":"You are being rate-limited."}`)(w, r)
			},
			check: func(t *testing.T, err error) {
				var rl *RateLimitError
				if !errors.As(err, &rl) {
					t.Fatalf("Expected *RateLimitError, got %v", err)
				}
				if rl.RetryAfter != 2*time.Second {
					t.Errorf("Expected retry after 2s, got %s", rl.RetryAfter)
				}
				if !strings.Contains(rl.Message, "rate-limited") {
					t.Errorf("Expected Jikan message, got %q", rl.Message)
				}
				if !IsRateLimited(err) {
					t.Error("Expected IsRateLimited")
				}
			},
		},
		{
			name:    "404",
			handler: respond(http.StatusNotFound, `{"status":404,"type":"BadResponseException","message":"Resource does not exist"}`),
			check: func(t *testing.T, err error) {
				if !IsNotFound(err) {
					t.Fatalf("Expected *NotFoundError, got %v", err)
				}
			},
		},
		{
			name:    "400",
			handler: respond(http.StatusBadRequest, `{"status":400,"type":"ValidationException","message":"Invalid request","error":"The q must be at least 3 characters."}`),
			check: func(t *testing.T, err error) {
				var ae *APIError
				if !errors.As(err, &ae) {
					t.Fatalf("Expected *APIError, got %v", err)
				}
				if ae.StatusCode != 400 || ae.Type != "ValidationException" || ae.Detail == "" {
					t.Errorf("Unexpected API error fields: %+v", ae)
				}
				if ae.Temporary() {
					t.Error("Expected 400 not to be temporary")
				}
			},
		},
		{
			name:    "503 without body",
			handler: respond(http.StatusServiceUnavailable, ``),
			check: func(t *testing.T, err error) {
				var ae *APIError
				if !errors.As(err, &ae) || !ae.Temporary() {
					t.Fatalf("Expected temporary *APIError, got %v", err)
				}
				if !strings.Contains(ae.Error(), "Service Unavailable") {
					t.Errorf("Expected status text in message, got %q", ae.Error())
				}
			},
		},
		{
			name:    "malformed body",
			handler: respond(http.StatusOK, `{"data":`),
			check: func(t *testing.T, err error) {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Expected *ParseError, got %v", err)
				}
				if pe.RawResponse != `{"data":` {
					t.Errorf("Expected raw body, got %q", pe.RawResponse)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.handler)
			c := newTestClient(t, api)

			_, err := c.GetAnime(context.Background(), 1)
			tt.check(t, err)

			if api.hits.Load() != 1 {
				t.Errorf("Expected a single attempt, got %d", api.hits.Load())
			}
		})
	}
}

func TestClient_ErrorSurfacesThroughChain(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusNotFound, `{}`))
	c := newTestClient(t, api, WithWindows(ratelimit.DefaultWindows()...))

	_, err := c.GetAnime(context.Background(), 999999)
	if !IsNotFound(err) {
		t.Fatalf("Expected *NotFoundError through three limiter layers, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusInternalServerError)
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		s := int(status.Load())
		if s == http.StatusOK {
			respond(s, animeBody)(w, r)
			return
		}
		respond(s, `{}`)(w, r)
	})
	c := newTestClient(t, api)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = c.GetAnime(ctx, 1)
	}
	if !c.IsHealthy() {
		t.Fatal("Expected healthy after 2 failures")
	}

	_, _ = c.GetAnime(ctx, 1)
	if c.IsHealthy() {
		t.Fatal("Expected unhealthy after 3 consecutive failures")
	}
	if h := c.Health(); h.ConsecutiveFailures != 3 || h.LastError == nil {
		t.Errorf("Unexpected health: %+v", h)
	}

	// 404 shows the API is up but does not end the failure streak.
	status.Store(http.StatusNotFound)
	_, _ = c.GetAnime(ctx, 1)
	if c.IsHealthy() {
		t.Error("Expected 404 to leave health unchanged")
	}

	status.Store(http.StatusOK)
	if _, err := c.GetAnime(ctx, 1); err != nil {
		t.Fatalf("GetAnime failed: %v", err)
	}
	h := c.Health()
	if !h.Healthy || h.ConsecutiveFailures != 0 || h.TotalRequests != 5 || h.FailedRequests != 3 {
		t.Errorf("Unexpected health after recovery: %+v", h)
	}
}

func TestClient_TransportError(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	url := api.URL
	api.Close()

	c, err := New(WithBaseURL(url), WithWindows())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = c.GetAnime(context.Background(), 1)
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("Expected *RequestError, got %v", err)
	}
	if c.Health().FailedRequests != 1 {
		t.Errorf("Expected transport failure to count, got %+v", c.Health())
	}
}

func TestClient_CancelledContext(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	c := newTestClient(t, api, WithWindows(ratelimit.DefaultWindows()...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAnime(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if api.hits.Load() != 0 {
		t.Errorf("Expected no request, got %d", api.hits.Load())
	}
}

func TestClient_ThrottlesConcurrentCallers(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		respond(http.StatusOK, animeBody)(w, r)
	})
	c := newTestClient(t, api, WithWindows(ratelimit.MustRateWindow(2, 20*time.Millisecond)))

	g, ctx := errgroup.WithContext(context.Background())
	for i := 1; i <= 8; i++ {
		id := i
		g.Go(func() error {
			_, err := c.GetAnime(ctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("GetAnime failed: %v", err)
	}

	if got := maxInFlight.Load(); got > 2 {
		t.Errorf("Expected at most 2 concurrent requests, got %d", got)
	}
	if api.hits.Load() != 8 {
		t.Errorf("Expected 8 requests, got %d", api.hits.Load())
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Drain(drainCtx); err != nil {
		t.Errorf("Drain failed: %v", err)
	}
}

func TestClient_Metrics(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "jikan"}, nil)
	c := newTestClient(t, api,
		WithMetrics(collector),
		WithCache(cache.NewMemory(10)),
		WithWindows(ratelimit.MustRateWindow(5, time.Millisecond)),
	)

	for i := 0; i < 2; i++ {
		if _, err := c.GetAnime(context.Background(), 1); err != nil {
			t.Fatalf("GetAnime failed: %v", err)
		}
	}

	expected := `
# HELP jikan_client_requests_total Total number of Jikan API calls
# TYPE jikan_client_requests_total counter
jikan_client_requests_total{endpoint="anime",status="200"} 1
# HELP jikan_cache_hits_total Total number of response cache hits
# TYPE jikan_cache_hits_total counter
jikan_cache_hits_total{backend="memory"} 1
# HELP jikan_cache_misses_total Total number of response cache misses
# TYPE jikan_cache_misses_total counter
jikan_cache_misses_total{backend="memory"} 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected),
		"jikan_client_requests_total", "jikan_cache_hits_total", "jikan_cache_misses_total"); err != nil {
		t.Error(err)
	}

	n, err := testutil.GatherAndCount(collector.Registry(), "jikan_ratelimit_admissions_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected limiter admissions for one window, got %d series", n)
	}

	// A second client on the same registry shares the limiter series.
	if _, err := New(WithBaseURL(api.URL), WithMetrics(collector)); err != nil {
		t.Errorf("Expected second client on shared registry to succeed, got %v", err)
	}
}

func TestClient_Tracing(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusNotFound, `{}`))
	recorder := tracetest.NewSpanRecorder()
	tracer := tracing.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	c := newTestClient(t, api, WithTracer(tracer))

	_, _ = c.GetAnime(context.Background(), 1)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "jikan.anime" {
		t.Errorf("Expected span jikan.anime, got %s", span.Name())
	}
	var sawStatus bool
	for _, attr := range span.Attributes() {
		if string(attr.Key) == tracing.AttrHTTPStatus && attr.Value.AsInt64() == 404 {
			sawStatus = true
		}
	}
	if !sawStatus {
		t.Errorf("Expected %s=404 attribute, got %v", tracing.AttrHTTPStatus, span.Attributes())
	}
	if len(span.Events()) == 0 {
		t.Error("Expected admission and error events")
	}
}

func TestNew_Options(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", opts: nil},
		{name: "empty base URL", opts: []Option{WithBaseURL("")}, wantErr: true},
		{name: "relative base URL", opts: []Option{WithBaseURL("api.jikan.moe")}, wantErr: true},
		{name: "nil http client", opts: []Option{WithHTTPClient(nil)}, wantErr: true},
		{name: "nil limiter", opts: []Option{WithLimiter(nil)}, wantErr: true},
		{name: "negative timeout", opts: []Option{WithTimeout(-time.Second)}, wantErr: true},
		{name: "negative ttl", opts: []Option{WithCacheTTL(-time.Second)}, wantErr: true},
		{name: "invalid window", opts: []Option{WithWindows(ratelimit.RateWindow{Count: 0, Duration: time.Second})}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c.BaseURL() != DefaultBaseURL {
				t.Errorf("Expected default base URL, got %s", c.BaseURL())
			}
			if len(c.Windows()) != 3 {
				t.Errorf("Expected default windows, got %v", c.Windows())
			}
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	api := newFakeAPI(t, respond(http.StatusOK, animeBody))

	cfg := config.NewDefaultConfig()
	cfg.Client.BaseURL = api.URL + "/"
	cfg.RateLimits.Windows = []string{"2/1ms"}
	cfg.Cache.Backend = "memory"

	c, err := NewFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	defer c.Close()

	if c.BaseURL() != api.URL {
		t.Errorf("Expected trailing slash trimmed, got %s", c.BaseURL())
	}
	if w := c.Windows(); len(w) != 1 || w[0].String() != "2/1ms" {
		t.Errorf("Unexpected windows: %v", w)
	}
	if c.Cache().Name() != cache.BackendMemory {
		t.Errorf("Expected memory cache, got %s", c.Cache().Name())
	}

	for i := 0; i < 2; i++ {
		if _, err := c.GetAnime(context.Background(), 1); err != nil {
			t.Fatalf("GetAnime failed: %v", err)
		}
	}
	if api.hits.Load() != 1 {
		t.Errorf("Expected second call served from cache, got %d hits", api.hits.Load())
	}
}

func TestNewFromConfig_Disabled(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.RateLimits.Disabled = true
	cfg.Cache.Backend = "none"

	c, err := NewFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	defer c.Close()
	if len(c.Windows()) != 0 {
		t.Errorf("Expected no windows, got %v", c.Windows())
	}
}
