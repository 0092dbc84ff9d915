package web

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"workshops/internal/adapters/http/middleware"
	"workshops/internal/adapters/http/perf"
	"workshops/internal/application/workshopstore"
)

// Deps holds the application dependencies served over HTTP.
type Deps struct {
	Store     *workshopstore.Store
	Collector *perf.Collector
}

// Options controls the middleware chain and environment-dependent routes.
type Options struct {
	CSRFKey            []byte // 32 bytes; nil means a random per-process key
	SecureCookies      bool
	RateLimitPerSecond int
	SlowRequestMs      int
	AllowTestData      bool
}

// Global workshop store (set by NewMux)
var store *workshopstore.Store

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// allowTestData gates the test data route outside production.
var allowTestData bool

// NewMux wires HTTP handlers for the app.
// PRE: d.Store is non-nil
// POST: Returns the mux wrapped in the middleware chain
func NewMux(d Deps, opts Options) http.Handler {
	store = d.Store
	perfCollector = d.Collector
	allowTestData = opts.AllowTestData

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = randomKey()
	}

	rate := opts.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	// Apply middleware: Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.SecureCookies),
		middleware.RateLimit(limiter),
		middleware.Timing(d.Collector, opts.SlowRequestMs),
	)
}

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate CSRF key: " + err.Error())
	}
	slog.Warn("csrf_random_key", "detail", "set WORKSHOP_CSRF_KEY to keep tokens valid across restarts")
	return key
}
