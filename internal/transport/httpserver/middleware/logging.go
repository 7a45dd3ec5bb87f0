package middleware

import (
	"net/http"

	"finance-tracker/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogContext makes chi's request id available to loggers built with
// logger.WithContext. It must run after chimw.RequestID.
func RequestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.ContextWithAttrs(r.Context(), "request_id", id))
		}
		next.ServeHTTP(w, r)
	})
}
