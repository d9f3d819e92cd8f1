package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"clubdir/internal/cache"
	"clubdir/internal/core"
	"clubdir/internal/directory"
	"clubdir/internal/middleware/ratelimit"
	"clubdir/internal/middleware/security"
	appweb "clubdir/web"
)

// resultsView is a filtered listing plus its summary metrics, cached per
// canonical query so repeated sidebar submissions skip the backend.
type resultsView struct {
	Clubs   []core.Club
	Summary core.Summary
}

type Server struct {
	http.Server
	templates *template.Template
	source    directory.Source

	limiter *ratelimit.Limiter
	headers *security.HeadersMiddleware

	resultsCache *cache.LRUCache[resultsView]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, source directory.Source) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		source:       source,
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: 120}),
		headers:      security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		resultsCache: cache.NewLRUCache[resultsView](200, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.resultsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withRequest(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	// UI partials
	mux.HandleFunc("/ui/results", s.withRequest(s.handleResults))
	mux.HandleFunc("/ui/compare", s.withRequest(s.handleCompare))
	mux.HandleFunc("/ui/calculator", s.withRequest(s.handleCalculator))
	// Exports
	mux.HandleFunc("/export/csv", s.withRequest(s.handleExportCSV))
	mux.HandleFunc("/export/json", s.withRequest(s.handleExportJSON))

	return s
}

// withRequest adds security headers, rate limiting and request logging.
func (s *Server) withRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if !s.limiter.Allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		s.headers.Middleware(next).ServeHTTP(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// getResults serves a filtered listing through the LRU cache.
func (s *Server) getResults(ctx context.Context, f *core.Filter, key core.SortKey, descending bool) (resultsView, error) {
	ck := filterCacheKey(f, key, descending)
	if view, found := s.resultsCache.Get(ck); found {
		slog.DebugContext(ctx, "Results cache hit", "key", ck)
		return view, nil
	}

	provider, err := s.source.Provider(ctx)
	if err != nil {
		return resultsView{}, err
	}
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	clubs, err := provider.List(cctx, f, key, descending)
	if err != nil {
		return resultsView{}, fmt.Errorf("list clubs: %w", err)
	}

	view := resultsView{Clubs: clubs, Summary: core.Summarize(clubs)}
	s.resultsCache.Set(ck, view)
	slog.DebugContext(ctx, "Results cached", "key", ck, "clubs", len(clubs))
	return view, nil
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

func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready only when templates are loaded and the dataset
// is servable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if _, err := s.source.Provider(r.Context()); err != nil {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
