package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			entry := logger.WithFields(logger.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"remote":     r.RemoteAddr,
			})
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				entry.Warn("request failed")
			case r.URL.Path == "/metrics" || r.URL.Path == "/health" || r.URL.Path == "/health/ready":
				entry.Debug("request")
			default:
				entry.Info("request")
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
