package middleware

import (
	"net/http"

	"showscape/pkg/utils"

	"go.uber.org/zap"
)

// Recover middleware
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				requestID, _ := utils.GetRequestIDFromContext(r.Context())
				logger.Error("PANIC recovered",
					zap.Any("error", err),
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Stack("stack"),
				)

				utils.ResponseInternalError(w, r, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
