package middlew

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	authUserKey
)

// WithLogger puts a request-scoped logger, tagged with the request id, into
// the context.
func WithLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				reqLog = log.With(slog.String("request_id", reqID))
			}
			ctx := context.WithValue(r.Context(), loggerKey, reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetLogger(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}
