package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/gameontext/gameon-player/internal/dependencies/mocks"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/testutil"
)

type VerifierSuite struct {
	suite.Suite
	key      *rsa.PrivateKey
	clock    *mocks.MockClock
	signer   *Signer
	verifier *Verifier
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func (s *VerifierSuite) SetupSuite() {
	s.key = testutil.NewRSAKey(s.T())
}

func (s *VerifierSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.signer = NewSigner(s.key, s.clock)
	s.verifier = NewVerifier(&s.key.PublicKey, s.clock, testutil.NopLogger())
}

func (s *VerifierSuite) sign(c Claims, ttl time.Duration) string {
	tok, err := s.signer.Sign(c, ttl)
	s.Require().NoError(err)
	return tok
}

func (s *VerifierSuite) assertAnonymous(ac AuthContext) {
	s.False(ac.IsAuthenticated())
	_, ok := ac.Identity()
	s.False(ok)
	_, ok = ac.Claims()
	s.False(ok)
}

func (s *VerifierSuite) TestEmptyTokenIsAnonymous() {
	s.assertAnonymous(s.verifier.Verify(""))
}

func (s *VerifierSuite) TestValidClientToken() {
	tok := s.sign(Claims{Subject: "github:42", Audience: model.AudienceClient, Email: "fish@example.com"}, time.Hour)

	ac := s.verifier.Verify(tok)
	s.True(ac.IsAuthenticated())

	id, ok := ac.Identity()
	s.True(ok)
	s.Equal(model.PlayerID("github:42"), id)
	s.Equal(model.AudienceClient, ac.Audience())
	s.False(ac.IsServer())
	s.Equal("fish@example.com", ac.Email())
}

func (s *VerifierSuite) TestServerAudience() {
	tok := s.sign(Claims{Subject: "game-on.org", Audience: model.AudienceServer}, time.Hour)

	ac := s.verifier.Verify(tok)
	s.True(ac.IsServer())
	s.Equal(model.AudienceServer, ac.Audience())
}

func (s *VerifierSuite) TestAudienceListContainingServer() {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "game-on.org",
		"aud": []string{"room", "server"},
		"exp": jwt.NewNumericDate(s.clock.Now().Add(time.Hour)),
	}).SignedString(s.key)
	s.Require().NoError(err)

	s.True(s.verifier.Verify(tok).IsServer())
}

func (s *VerifierSuite) TestMissingAudienceIsClient() {
	tok := s.sign(Claims{Subject: "github:42"}, time.Hour)

	ac := s.verifier.Verify(tok)
	s.True(ac.IsAuthenticated())
	s.Equal(model.AudienceClient, ac.Audience())
}

func (s *VerifierSuite) TestExtraClaimsExposed() {
	tok := s.sign(Claims{
		Subject: "github:42",
		Extra:   map[string]any{"name": "Chunky", "story": "s1"},
	}, time.Hour)

	claims, ok := s.verifier.Verify(tok).Claims()
	s.Require().True(ok)
	s.Equal("Chunky", claims.Extra["name"])
	s.Equal("s1", claims.Extra["story"])
	s.NotContains(claims.Extra, "sub")
	s.NotContains(claims.Extra, "exp")
}

func (s *VerifierSuite) TestClaimsCopyIsIsolated() {
	tok := s.sign(Claims{Subject: "github:42", Extra: map[string]any{"k": "v"}}, time.Hour)
	ac := s.verifier.Verify(tok)

	first, _ := ac.Claims()
	first.Extra["k"] = "changed"

	second, _ := ac.Claims()
	s.Equal("v", second.Extra["k"])
}

func (s *VerifierSuite) TestVerifyIsDeterministic() {
	tok := s.sign(Claims{Subject: "github:42", Audience: model.AudienceServer}, time.Hour)

	a := s.verifier.Verify(tok)
	b := s.verifier.Verify(tok)

	idA, _ := a.Identity()
	idB, _ := b.Identity()
	s.Equal(idA, idB)
	s.Equal(a.Audience(), b.Audience())
}

func (s *VerifierSuite) TestExpiredTokenIsAnonymous() {
	tok := s.sign(Claims{Subject: "github:42"}, time.Minute)
	s.clock.Advance(2 * time.Minute)

	s.assertAnonymous(s.verifier.Verify(tok))
}

func (s *VerifierSuite) TestNotYetValidTokenIsAnonymous() {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "github:42",
		"nbf": jwt.NewNumericDate(s.clock.Now().Add(time.Hour)),
		"exp": jwt.NewNumericDate(s.clock.Now().Add(2 * time.Hour)),
	}).SignedString(s.key)
	s.Require().NoError(err)

	s.assertAnonymous(s.verifier.Verify(tok))
}

func (s *VerifierSuite) TestTokenWithoutExpiryIsAnonymous() {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "github:42",
		"aud": "server",
	}).SignedString(s.key)
	s.Require().NoError(err)

	s.assertAnonymous(s.verifier.Verify(tok))
}

func (s *VerifierSuite) TestSignerRequiresExpiry() {
	_, err := s.signer.Sign(Claims{Subject: "github:42"}, 0)
	s.ErrorContains(err, "ttl must be positive")
}

func (s *VerifierSuite) TestMissingSubjectIsAnonymous() {
	tok := s.sign(Claims{Audience: model.AudienceServer}, time.Hour)

	s.assertAnonymous(s.verifier.Verify(tok))
}

func (s *VerifierSuite) TestMalformedTokensAreAnonymous() {
	valid := s.sign(Claims{Subject: "github:42"}, time.Hour)
	parts := strings.Split(valid, ".")

	cases := []string{
		"garbage",
		"a.b.c",
		parts[0] + "." + parts[1],
		parts[0] + "." + parts[1] + ".",
		valid + "x",
	}
	for _, tc := range cases {
		s.assertAnonymous(s.verifier.Verify(tc))
	}
}

func (s *VerifierSuite) TestWrongKeyIsAnonymous() {
	other := NewSigner(testutil.NewRSAKey(s.T()), s.clock)
	tok, err := other.Sign(Claims{Subject: "github:42"}, time.Hour)
	s.Require().NoError(err)

	s.assertAnonymous(s.verifier.Verify(tok))
}

func (s *VerifierSuite) TestUnexpectedAlgorithmIsAnonymous() {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "github:42",
	}).SignedString(x509.MarshalPKCS1PublicKey(&s.key.PublicKey))
	s.Require().NoError(err)

	s.assertAnonymous(s.verifier.Verify(tok))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "github:42",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	s.assertAnonymous(s.verifier.Verify(none))
}

func (s *VerifierSuite) TestLoadPublicKeyFromPEM() {
	path := testutil.WritePublicKeyPEM(s.T(), s.key)

	key, err := LoadPublicKey(path)
	s.Require().NoError(err)
	s.True(key.Equal(&s.key.PublicKey))
}

func (s *VerifierSuite) TestLoadPublicKeyFromCertificate() {
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "gameon"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &s.key.PublicKey, s.key)
	s.Require().NoError(err)

	path := filepath.Join(s.T().TempDir(), "cert.pem")
	s.Require().NoError(os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))

	key, err := LoadPublicKey(path)
	s.Require().NoError(err)
	s.True(key.Equal(&s.key.PublicKey))
}

func (s *VerifierSuite) TestLoadPublicKeyErrors() {
	_, err := LoadPublicKey(filepath.Join(s.T().TempDir(), "missing.pem"))
	s.Error(err)

	path := filepath.Join(s.T().TempDir(), "junk.pem")
	s.Require().NoError(os.WriteFile(path, []byte("not a key"), 0o600))
	_, err = LoadPublicKey(path)
	s.Error(err)
}

func (s *VerifierSuite) TestLoadPrivateKeyRoundTrip() {
	path := testutil.WritePrivateKeyPEM(s.T(), s.key)

	key, err := LoadPrivateKey(path)
	s.Require().NoError(err)

	tok, err := NewSigner(key, s.clock).Sign(Claims{Subject: "github:42"}, time.Hour)
	s.Require().NoError(err)
	s.True(s.verifier.Verify(tok).IsAuthenticated())
}
