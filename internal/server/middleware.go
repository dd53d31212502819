package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/corescene/pkg/observability"
)

// instrument reports each request to the server hooks and logs it. The
// route is the matched pattern, known only once routing has finished.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"dur", dur.Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}
