package factory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gameontext/gameon-player/internal/config"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/services/events"
	redisstorage "github.com/gameontext/gameon-player/internal/storage/redis"
	redisstream "github.com/gameontext/gameon-player/internal/stream/redis"
	"github.com/gameontext/gameon-player/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.app.Start(s.ctx)
	s.Require().Eventually(s.app.Dispatcher.Connected, time.Second, time.Millisecond)
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close(s.ctx))
}

func (s *IntegrationSuite) verify(sub model.PlayerID, aud model.Audience, email string) auth.AuthContext {
	ac := s.app.Verifier.Verify(s.app.Token(sub, aud, email))
	s.Require().True(ac.IsAuthenticated())
	return ac
}

func (s *IntegrationSuite) envelopes() []events.Envelope {
	msgs := s.app.Stream.Messages(events.DefaultConfig().Topic)
	out := make([]events.Envelope, len(msgs))
	for i, m := range msgs {
		s.Require().NoError(json.Unmarshal(m.Payload, &out[i]))
	}
	return out
}

// Test: Complete account lifecycle, each mutation published in order
func (s *IntegrationSuite) TestAccountLifecycleEmitsEvents() {
	const id model.PlayerID = "github:1234"
	owner := s.verify(id, model.AudienceClient, "")
	server := s.verify("room-service", model.AudienceServer, "")

	// Step 1: Create
	created, err := s.app.AccountService.Create(s.ctx, owner, model.Player{ID: id, Name: "Chunky", FavoriteColor: "Pink"})
	s.Require().NoError(err)
	s.Require().NotNil(created.SharedSecret)
	s.NotEmpty(*created.SharedSecret)

	// Step 2: Rename
	_, err = s.app.AccountService.Update(s.ctx, owner, id, model.PlayerPatch{Name: model.StringPtr("Kitten")})
	s.Require().NoError(err)

	// Step 3: A room moves the player
	origin := "room-1"
	loc, err := s.app.AccountService.UpdateLocation(s.ctx, server, id, model.LocationChange{
		OldLocation: model.FirstLocation,
		NewLocation: "room-2",
		Origin:      &origin,
	})
	s.Require().NoError(err)
	s.Equal("room-2", loc)

	// Step 4: Rotate the secret
	rotated, err := s.app.AccountService.RotateSecret(s.ctx, owner, id)
	s.Require().NoError(err)
	s.NotEqual(*created.SharedSecret, *rotated.SharedSecret)

	// Step 5: Delete
	s.Require().NoError(s.app.AccountService.Delete(s.ctx, owner, id))

	s.Require().Eventually(func() bool { return len(s.app.Stream.Messages("playerEvents")) == 5 }, time.Second, time.Millisecond)

	envs := s.envelopes()
	var types []model.EventType
	for _, e := range envs {
		types = append(types, e.Type)
		s.Equal(id, e.Player.ID)
		s.Equal(s.app.MockClock.Now(), e.Timestamp)
	}
	s.Equal([]model.EventType{
		model.EventCreate,
		model.EventUpdate,
		model.EventUpdateLocation,
		model.EventUpdateAPIKey,
		model.EventDelete,
	}, types)

	s.Equal("Kitten", envs[1].Player.Name)
	s.Require().NotNil(envs[2].Origin)
	s.Equal("room-1", *envs[2].Origin)
	s.Equal("room-2", envs[2].Player.CurrentLocation())
	s.Nil(envs[3].Origin)
}

func (s *IntegrationSuite) TestRejectedOperationsEmitNothing() {
	const id model.PlayerID = "github:1234"
	owner := s.verify(id, model.AudienceClient, "")
	stranger := s.verify("github:9999", model.AudienceClient, "")

	_, err := s.app.AccountService.Create(s.ctx, owner, model.Player{ID: id, Name: "Chunky"})
	s.Require().NoError(err)
	s.Require().Eventually(func() bool { return len(s.app.Stream.Messages("playerEvents")) == 1 }, time.Second, time.Millisecond)

	_, err = s.app.AccountService.Update(s.ctx, stranger, id, model.PlayerPatch{Name: model.StringPtr("Mine")})
	s.ErrorIs(err, model.ErrForbidden)

	_, err = s.app.AccountService.UpdateLocation(s.ctx, owner, id, model.LocationChange{OldLocation: model.FirstLocation, NewLocation: "x"})
	s.ErrorIs(err, model.ErrWrongAudience)

	s.Require().NoError(s.app.Close(s.ctx))
	s.Len(s.app.Stream.Messages("playerEvents"), 1)
}

func (s *IntegrationSuite) TestSystemIdentityActsOnAnyPlayer() {
	system := s.verify(auth.DefaultSystemID, model.AudienceClient, "")

	_, err := s.app.AccountService.Create(s.ctx, system, model.Player{ID: "github:42", Name: "Made by system"})
	s.Require().NoError(err)

	creds, err := s.app.AccountService.GetCredentials(s.ctx, system, "github:42")
	s.Require().NoError(err)
	s.NotNil(creds.SharedSecret)
}

func TestNewRequiresPublicKey(t *testing.T) {
	_, err := New(Config{})
	if err == nil {
		t.Fatal("expected error without a public key")
	}
}

func TestNewRejectsUnknownBackends(t *testing.T) {
	key := testutil.NewRSAKey(t)

	_, err := New(Config{PublicKey: &key.PublicKey, StorageType: "couch"})
	require.Error(t, err)

	_, err = New(Config{PublicKey: &key.PublicKey, EventsType: "kafka"})
	require.Error(t, err)

	_, err = New(Config{PublicKey: &key.PublicKey, StorageType: config.StorageRedis})
	require.Error(t, err)

	_, err = New(Config{PublicKey: &key.PublicKey, EventsType: config.EventsRedis})
	require.Error(t, err)
}

func TestNewWithoutEventsDropsThem(t *testing.T) {
	key := testutil.NewRSAKey(t)

	app, err := New(Config{PublicKey: &key.PublicKey})
	require.NoError(t, err)
	assert.Nil(t, app.Dispatcher)
	assert.Nil(t, app.Publisher)

	app.Start(context.Background())
	defer func() { assert.NoError(t, app.Close(context.Background())) }()

	signer := auth.NewSigner(key, app.Clock)
	tok, err := signer.Sign(auth.Claims{Subject: "github:1"}, time.Hour)
	require.NoError(t, err)

	_, err = app.AccountService.Create(context.Background(), app.Verifier.Verify(tok), model.Player{ID: "github:1", Name: "Solo"})
	require.NoError(t, err)
}

func TestNewWithRedisBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	key := testutil.NewRSAKey(t)

	storeCfg := redisstorage.DefaultConfig()
	storeCfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{
		PublicKey:         &key.PublicKey,
		StorageType:       config.StorageRedis,
		RedisConfig:       &storeCfg,
		EventsType:        config.EventsRedis,
		EventsRedisConfig: &redisstream.Config{URL: "redis://" + mr.Addr(), MaxLen: 100},
		Events:            events.Config{RetryBase: time.Millisecond},
	})
	require.NoError(t, err)

	ctx := context.Background()
	app.Start(ctx)
	require.Eventually(t, app.Dispatcher.Connected, time.Second, time.Millisecond)

	signer := auth.NewSigner(key, app.Clock)
	tok, err := signer.Sign(auth.Claims{Subject: "github:1"}, time.Hour)
	require.NoError(t, err)

	_, err = app.AccountService.Create(ctx, app.Verifier.Verify(tok), model.Player{ID: "github:1", Name: "Redis"})
	require.NoError(t, err)

	require.NoError(t, app.Close(ctx))

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	n, err := client.XLen(ctx, "playerEvents").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err := client.Exists(ctx, "gameon:player:github:1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
