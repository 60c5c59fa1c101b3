package auth

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gameontext/gameon-player/internal/dependencies/clock"
	"github.com/gameontext/gameon-player/internal/model"
)

// validMethods are the signing algorithms accepted for identity tokens
var validMethods = []string{
	jwt.SigningMethodRS256.Alg(),
	jwt.SigningMethodRS384.Alg(),
	jwt.SigningMethodRS512.Alg(),
}

var registeredClaims = map[string]struct{}{
	"iss": {}, "sub": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {},
}

// Verifier validates signed identity tokens against a fixed public key
type Verifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
	logger *slog.Logger
}

// NewVerifier creates a verifier. The key is never modified afterwards.
func NewVerifier(key *rsa.PublicKey, clk clock.Clock, logger *slog.Logger) *Verifier {
	return &Verifier{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods(validMethods),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clk.Now),
		),
		logger: logger.With(slog.String("component", "verifier")),
	}
}

// Verify checks raw and returns the resulting context. An empty raw is an
// anonymous request. Any verification failure also yields the anonymous context.
func (v *Verifier) Verify(raw string) AuthContext {
	if raw == "" {
		return Anonymous()
	}

	claims, err := v.parse(raw)
	if err != nil {
		v.logger.Debug("token rejected", slog.String("error", err.Error()))
		return Anonymous()
	}
	return Authenticated(claims)
}

func (v *Verifier) parse(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := v.parser.ParseWithClaims(raw, mc, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !tkn.Valid {
		return Claims{}, fmt.Errorf("invalid token")
	}

	sub, err := mc.GetSubject()
	if err != nil {
		return Claims{}, err
	}
	if sub == "" {
		return Claims{}, fmt.Errorf("token has no subject")
	}

	aud, err := mc.GetAudience()
	if err != nil {
		return Claims{}, err
	}

	claims := Claims{
		Subject:  model.PlayerID(sub),
		Audience: audienceOf(aud),
		Extra:    map[string]any{},
	}
	for k, val := range mc {
		if _, ok := registeredClaims[k]; ok {
			continue
		}
		claims.Extra[k] = val
	}
	if email, ok := mc["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}

func audienceOf(aud jwt.ClaimStrings) model.Audience {
	for _, a := range aud {
		if a == string(model.AudienceServer) {
			return model.AudienceServer
		}
	}
	return model.AudienceClient
}

// LoadPublicKey reads an RSA public key from a PEM file.
// PKIX and PKCS#1 keys and X.509 certificates are accepted.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse key file %s: %w", path, err)
	}
	return key, nil
}
