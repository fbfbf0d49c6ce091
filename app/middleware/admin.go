package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// RequireAdminToken guards admin routes with a static bearer token.
// With no token configured the admin API is disabled.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":"admin API is disabled","code":"admin_disabled"}`))
				return
			}

			given, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				log.Printf("⚠️  Rejected admin request: %s %s", r.Method, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","code":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
