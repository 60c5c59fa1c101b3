package factory

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"time"

	"github.com/gameontext/gameon-player/internal/dependencies/mocks"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/services/events"
	"github.com/gameontext/gameon-player/internal/storage/memory"
	memorystream "github.com/gameontext/gameon-player/internal/stream/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Stream records published events
	Stream *memorystream.Publisher
	// Signer mints tokens the app's verifier accepts
	Signer *auth.Signer
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Events go to an in-memory stream once Start is called.
func NewTestApp() *TestApp {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic("generate test signing key: " + err.Error())
	}

	store := memory.New()
	stream := memorystream.New(memorystream.DefaultRetain)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	eventsCfg := events.DefaultConfig()
	eventsCfg.RetryBase = time.Millisecond

	app := newWithDependencies(store, stream, &key.PublicKey, auth.DefaultSystemID, eventsCfg, mockClock, mockRandom, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Stream:     stream,
		Signer:     auth.NewSigner(key, mockClock),
	}
}

// Token mints a one-hour token for sub
func (t *TestApp) Token(sub model.PlayerID, aud model.Audience, email string) string {
	tok, err := t.Signer.Sign(auth.Claims{Subject: sub, Audience: aud, Email: email}, time.Hour)
	if err != nil {
		panic("sign test token: " + err.Error())
	}
	return tok
}
