package auth

import "github.com/gameontext/gameon-player/internal/model"

// Claims is the verified content of an identity token
type Claims struct {
	Subject  model.PlayerID
	Audience model.Audience
	Email    string

	// Extra holds every claim that is not a registered JWT claim
	Extra map[string]any
}

// AuthContext is the per-request result of token verification.
// Both identity and claims are present, or neither is.
type AuthContext struct {
	claims *Claims
}

// Anonymous returns the context for a request without a usable credential
func Anonymous() AuthContext {
	return AuthContext{}
}

// Authenticated returns the context for a verified token
func Authenticated(c Claims) AuthContext {
	return AuthContext{claims: &c}
}

// IsAuthenticated reports whether a verified identity is present
func (a AuthContext) IsAuthenticated() bool {
	return a.claims != nil
}

// Identity returns the verified subject, if any
func (a AuthContext) Identity() (model.PlayerID, bool) {
	if a.claims == nil {
		return "", false
	}
	return a.claims.Subject, true
}

// Claims returns a copy of the verified claims, if any
func (a AuthContext) Claims() (Claims, bool) {
	if a.claims == nil {
		return Claims{}, false
	}
	c := *a.claims
	if a.claims.Extra != nil {
		c.Extra = make(map[string]any, len(a.claims.Extra))
		for k, v := range a.claims.Extra {
			c.Extra[k] = v
		}
	}
	return c, true
}

// Audience returns the token audience. Anonymous callers are treated as clients.
func (a AuthContext) Audience() model.Audience {
	if a.claims == nil {
		return model.AudienceClient
	}
	return a.claims.Audience
}

// IsServer reports whether the caller presented a server-audience token
func (a AuthContext) IsServer() bool {
	return a.claims != nil && a.claims.Audience == model.AudienceServer
}

// Email returns the email claim, or "" when absent
func (a AuthContext) Email() string {
	if a.claims == nil {
		return ""
	}
	return a.claims.Email
}
