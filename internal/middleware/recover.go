package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/response"
)

// Recover turns a panicking handler into a 500 response and logs the panic.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.L()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error("handler panic",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("panic", v),
						zap.Stack("stack"),
					)
					response.RespondError(w, http.StatusInternalServerError, "internal error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
