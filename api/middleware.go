package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware sets the response content type, tags the request with an ID for log
// correlation, and converts handler panics into opaque 500s
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				zap.S().Errorw("panic while serving request",
					"requestId", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
				)
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "internal server error"}`))
			}
		}()

		next.ServeHTTP(w, r)

		zap.S().Debugw("request served",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
