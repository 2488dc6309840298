package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pinkcart/go-backend/pkg/logger"
)

// requestLogger пишет в лог метод, путь, статус и длительность каждого запроса.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if status >= http.StatusInternalServerError {
				log.Warnf("%s %s -> %d in %s (req %s)", r.Method, r.URL.Path, status, time.Since(start), middleware.GetReqID(r.Context()))
				return
			}
			log.Debugf("%s %s -> %d in %s", r.Method, r.URL.Path, status, time.Since(start))
		})
	}
}
