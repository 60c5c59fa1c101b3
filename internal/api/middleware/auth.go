package middleware

import (
	"context"
	"net/http"

	"github.com/gameontext/gameon-player/internal/api/apierr"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
)

const (
	// TokenHeader is the request header carrying the identity token
	TokenHeader = "gameon-jwt"
	// TokenQueryParam is the query parameter alternative to TokenHeader
	TokenQueryParam = "jwt"
)

type contextKey string

const authContextKey contextKey = "auth"

// Auth creates authentication middleware. It never rejects a request for a
// bad or missing token: the request continues as anonymous and operations
// decide what anonymity allows. Supplying the token more than once is
// rejected since the caller's intent is unclear.
func Auth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ac := auth.Anonymous()
			if token != "" {
				ac = verifier.Verify(token)
			}

			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), ac)))
		})
	}
}

// extractToken returns the single token supplied in the header or query
func extractToken(r *http.Request) (string, error) {
	headers := r.Header.Values(TokenHeader)
	params := r.URL.Query()[TokenQueryParam]

	if len(headers)+len(params) > 1 {
		return "", model.ErrAmbiguousCredential
	}
	if len(headers) == 1 {
		return headers[0], nil
	}
	if len(params) == 1 {
		return params[0], nil
	}
	return "", nil
}

// WithAuth returns a copy of ctx carrying ac
func WithAuth(ctx context.Context, ac auth.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// GetAuth returns the caller's auth context, anonymous when none was set
func GetAuth(ctx context.Context) auth.AuthContext {
	ac, ok := ctx.Value(authContextKey).(auth.AuthContext)
	if !ok {
		return auth.Anonymous()
	}
	return ac
}
