package middleware

import (
	"net/http"
)

// DemoModeMiddleware turns the API read-only. Export downloads are GETs and
// keep working.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isDemo && r.Method != http.MethodGet && r.Method != http.MethodOptions && r.Method != http.MethodHead {
				http.Error(w, "Demo mode: only GET requests are allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
