package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery converts handler panics into an error response and a logged stack trace
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	if handler == nil {
		handler = plainPanicHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					handler(w, r, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func plainPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
