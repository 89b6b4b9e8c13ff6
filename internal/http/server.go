package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fundboard/internal/cache"
	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/logos"
	"fundboard/internal/metrics"
	"fundboard/internal/services"
	appweb "fundboard/web"
)

// Options tunes the server beyond its collaborators.
type Options struct {
	SummaryCacheSize int
	SummaryCacheTTL  time.Duration
}

func (o Options) withDefaults() Options {
	if o.SummaryCacheSize <= 0 {
		o.SummaryCacheSize = 200
	}
	if o.SummaryCacheTTL <= 0 {
		o.SummaryCacheTTL = 5 * time.Minute
	}
	return o
}

type Server struct {
	http.Server
	templates *template.Template

	summaries services.SummaryReader
	companies services.CompanyLister
	logos     *logos.Resolver

	rateLimiter *rateLimiter

	// Summaries are cached per (dataset version, company); a dataset
	// reload changes the version and naturally orphans stale entries.
	summaryCache *cache.LRU[core.CompanySummary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server.
func NewServer(addr string, sr services.SummaryReader, cl services.CompanyLister, lr *logos.Resolver, opts Options) *Server {
	opts = opts.withDefaults()
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		summaries:        sr,
		companies:        cl,
		logos:            lr,
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRU[core.CompanySummary](opts.SummaryCacheSize, opts.SummaryCacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.observe("index", s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())
	// UI partials
	mux.HandleFunc("/ui/company-summary", s.observe("company-summary", s.handleCompanySummary))
	mux.HandleFunc("/ui/company-logo", s.observe("company-logo", s.handleCompanyLogo))
	// JSON API
	mux.HandleFunc("/api/companies", s.observe("api-companies", s.handleAPICompanies))
	mux.HandleFunc("/api/summary", s.observe("api-summary", s.handleAPISummary))

	return s
}

// observe wraps a handler with security headers, rate limiting,
// request tracing, metrics and request logging.
func (s *Server) observe(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		if detectSuspiciousRequest(r) {
			slog.WarnContext(ctx, "Suspicious request",
				log.FieldRequestID, requestID,
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path)
		}

		if !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		timer.ObserveHTTPRequest(route, r.Method)

		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// ctxKeyRequestID keys the request ID in the request context.
type ctxKeyRequestID struct{}

// startCacheCleanup periodically drops expired summary cache entries.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "summary_entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready only when the dataset is loadable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.summaries.DatasetVersion(ctx); err != nil {
		slog.ErrorContext(ctx, "Readiness check failed", log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("dataset unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// getSummary returns the company summary, served from the LRU cache
// when the dataset version still matches.
func (s *Server) getSummary(ctx context.Context, company string) (core.CompanySummary, error) {
	version, err := s.summaries.DatasetVersion(ctx)
	if err != nil {
		return core.CompanySummary{}, err
	}
	key := version + "|" + company

	if summary, found := s.summaryCache.Get(key); found {
		metrics.SummaryCacheHits.Inc()
		slog.DebugContext(ctx, "Summary cache hit", log.FieldCompany, company)
		return summary, nil
	}
	metrics.SummaryCacheMisses.Inc()

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	summary, err := s.summaries.Summarize(cctx, company)
	if err != nil {
		return core.CompanySummary{}, err
	}
	s.summaryCache.Set(key, summary)
	return summary, nil
}
