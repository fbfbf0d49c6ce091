package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	visitorSessionName = "gallery_visitor"
	visitorTokenKey    = "token"
)

type contextKey string

const visitorContextKey contextKey = "visitorToken"

// NewVisitorStore creates the signed cookie store that carries visitor tokens
func NewVisitorStore(secret string, secure bool) *sessions.CookieStore {
	if secret == "" {
		log.Printf("⚠️  SESSION_SECRET is not set, using an insecure development secret")
		secret = "dev-only-session-secret-change-me"
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 365,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// visitor is stored in the request context by Visitor
type visitor struct {
	token string
	// returning is true when the token came from a valid incoming cookie
	returning bool
}

// Visitor makes sure every request carries an anonymous visitor token.
// A new uuid is issued and written to the cookie when the session has none
// or the cookie fails signature checks.
func Visitor(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get returns a fresh session alongside a decode error
			session, _ := store.Get(r, visitorSessionName)

			token, _ := session.Values[visitorTokenKey].(string)
			returning := true
			if _, err := uuid.Parse(token); err != nil {
				returning = false
				token = uuid.NewString()
				session.Values[visitorTokenKey] = token
				if err := session.Save(r, w); err != nil {
					log.Printf("❌ Failed to save visitor session: %v", err)
				}
			}

			ctx := context.WithValue(r.Context(), visitorContextKey, visitor{token: token, returning: returning})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithVisitorToken returns a copy of ctx carrying token as a returning visitor
func WithVisitorToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, visitorContextKey, visitor{token: token, returning: true})
}

// VisitorToken returns the visitor token stored by Visitor, or "" when absent
func VisitorToken(ctx context.Context) string {
	v, _ := ctx.Value(visitorContextKey).(visitor)
	return v.token
}

// ReturningVisitor reports whether the visitor token was read from the request cookie
// rather than issued for this request
func ReturningVisitor(ctx context.Context) bool {
	v, _ := ctx.Value(visitorContextKey).(visitor)
	return v.returning && v.token != ""
}
