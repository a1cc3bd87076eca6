// Package api implements the HTTP surface of the trip planner: request
// validation, route resolution, and response assembly around the pure
// internal/hos and internal/logsheet packages. The chi router and JSON
// response helper follow the pattern in the livesim2 app server.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// NewRouter builds the chi router for the trip planner's HTTP API. log is
// the base logger every request-scoped logger derives from.
func NewRouter(h *Handlers, log *logger.Logger, readTimeout, writeTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(readTimeout + writeTimeout))

	r.Get("/healthz", Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/plan", h.PlanTrip)
		api.Get("/places", h.SearchPlaces)
		api.Get("/debug", h.Debug)
	})

	return r
}

// requestLogger stashes a request-scoped logger (tagged with the chi
// request ID) in the request context via logger.ToContext, then emits one
// access line per request once the handler returns: Infow below 400,
// Warnw for 4xx, Errorw for 5xx.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.WithRequestID(middleware.GetReqID(r.Context()))
			r = r.WithContext(logger.ToContext(r.Context(), reqLog))

			next.ServeHTTP(ww, r)

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case ww.Status() >= 500:
				reqLog.Errorw("http request", fields...)
			case ww.Status() >= 400:
				reqLog.Warnw("http request", fields...)
			default:
				reqLog.Infow("http request", fields...)
			}
		})
	}
}

// NotFoundJSON is a chi NotFound handler returning the errorResponse shape
// instead of chi's default plain-text 404.
func NotFoundJSON(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusNotFound, errorResponse{Error: "not found"})
}
