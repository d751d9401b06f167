// Request middleware: logging, CORS, and static assets. All of it runs
// before route dispatch.

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// withMiddleware wraps the route table with the outer request pipeline.
func (a *API) withMiddleware(next http.Handler) http.Handler {
	h := a.staticAssets(next)
	h = a.corsMiddleware(h)
	h = a.logRequests(h)
	return h
}

// staticAssets serves files under /public/ from the configured directory.
// Everything else falls through to route dispatch.
func (a *API) staticAssets(next http.Handler) http.Handler {
	if a.cfg.Server.PublicDir == "" {
		return next
	}
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(a.cfg.Server.PublicDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/public/") {
			fileServer.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware sets CORS headers per configuration and answers OPTIONS
// preflight requests directly.
func (a *API) corsMiddleware(next http.Handler) http.Handler {
	cfg := a.cfg.CORS
	if !cfg.Enabled {
		return next
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := allowOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Max-Age", maxAge)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for a request
// origin, or "" when the origin is not allowed.
func allowOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if o == origin && origin != "" {
			return origin
		}
	}
	return ""
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with method, path, status and
// duration.
func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		a.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
