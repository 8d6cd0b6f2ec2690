package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"reminders-server/logging"
	"reminders-server/respond"
)

// Recover turns a handler panic into the generic 500 response.
func Recover(log logging.Logger, rs *respond.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error(r.Context(), "panic recovered", "panic", v, "stack", string(debug.Stack()))
					rs.Internal(w, r, fmt.Errorf("panic: %v", v))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
