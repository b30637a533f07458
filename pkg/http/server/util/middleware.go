package util

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
)

const (
	requestIDHeader = "X-Request-ID"
	traceIDHeader   = "X-Trace-ID"
)

// RequestID takes the request id from the request header or creates a new one.
// The id is returned in the response header and added to the request logger.
func RequestID(base *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			ctx := log.AddToContext(r.Context(), base.With(log.String("requestId", id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TraceID adds the trace id of the current span to the response header
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if span.SpanContext().IsValid() {
			w.Header().Set(traceIDHeader, span.SpanContext().TraceID().String())
		}
		next.ServeHTTP(w, r)
	})
}

// AppContext makes cfg available to the handlers via config.FromContext
func AppContext(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(config.NewContext(r.Context(), cfg)))
		})
	}
}

// RequestLogger logs each request on debug level
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.GetFromContext(r.Context()).Debug("request",
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.Int("status", ww.Status()),
				log.Int("bytes", ww.BytesWritten()),
				log.Duration("duration", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

// ConfigFromContext returns the application config, the default config if
// the request has none
func ConfigFromContext(r *http.Request) *config.Config {
	if cfg := config.FromContext(r.Context()); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}
