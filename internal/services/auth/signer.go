package auth

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gameontext/gameon-player/internal/dependencies/clock"
)

// Signer mints identity tokens. It is used for local development and tests;
// production tokens come from the authentication service.
type Signer struct {
	key   *rsa.PrivateKey
	clock clock.Clock
}

// NewSigner creates a signer using key
func NewSigner(key *rsa.PrivateKey, clk clock.Clock) *Signer {
	return &Signer{key: key, clock: clk}
}

// Sign returns an RS256 token carrying c that expires after ttl
func (s *Signer) Sign(c Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("sign token: ttl must be positive, got %s", ttl)
	}
	now := s.clock.Now()

	mc := jwt.MapClaims{}
	for k, v := range c.Extra {
		mc[k] = v
	}
	mc["sub"] = string(c.Subject)
	mc["iat"] = jwt.NewNumericDate(now)
	if c.Audience != "" {
		mc["aud"] = string(c.Audience)
	}
	if c.Email != "" {
		mc["email"] = c.Email
	}
	mc["exp"] = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, mc).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// LoadPrivateKey reads an RSA private key from a PKCS#1 or PKCS#8 PEM file
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse key file %s: %w", path, err)
	}
	return key, nil
}
