package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandalearn/pandalearn/pkg/buildinfo"
	"github.com/pandalearn/pandalearn/pkg/observability"
)

// Client hint carrying the browser's prefers-color-scheme.
const hintPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

// logRequests starts a span per request, reports it to the HTTP hooks and
// logs one line when the response is written.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ctx, span := observability.Tracer().Start(r.Context(), r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.target", r.URL.Path)),
		)
		defer span.End()
		r = r.WithContext(ctx)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		span.SetName(r.Method + " " + route)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(started)
		hooks.OnResponse(ctx, r.Method, route, status, elapsed)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// clientHintHeaders asks browsers for the color-scheme hint and marks
// responses as varying on it.
func clientHintHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Accept-CH", hintPrefersColorScheme)
		h.Set("Critical-CH", hintPrefersColorScheme)
		h.Add("Vary", hintPrefersColorScheme)
		h.Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}
