package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/gameontext/gameon-player/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) createPlayer(id, name string) *model.Player {
	p := &model.Player{
		ID:            model.PlayerID(id),
		Name:          name,
		FavoriteColor: "Vivid Orchid",
		SharedSecret:  model.StringPtr("secret"),
	}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p))
	return p
}

func (s *StorageSuite) TestCreateAndGetPlayer() {
	created := s.createPlayer("github:1", "Chunky")
	s.NotEmpty(created.Revision)

	retrieved, err := s.storage.GetPlayer(s.ctx, "github:1")
	s.Require().NoError(err)
	s.Equal("Chunky", retrieved.Name)
	s.Equal(created.Revision, retrieved.Revision)
	s.Require().NotNil(retrieved.SharedSecret)
	s.Equal("secret", *retrieved.SharedSecret)
}

func (s *StorageSuite) TestStoredDocumentShape() {
	s.createPlayer("github:1", "Chunky")

	raw, err := s.mini.Get("gameon:player:github:1")
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal([]byte(raw), &doc))
	s.Equal("github:1", doc["_id"])
	s.Equal("secret", doc["apiKey"])
	s.Contains(doc, "_rev")
	s.NotContains(doc, "location")

	members, err := s.mini.Members("gameon:idx:players")
	s.Require().NoError(err)
	s.Equal([]string{"github:1"}, members)
}

func (s *StorageSuite) TestCreateDuplicateFails() {
	s.createPlayer("github:1", "Chunky")

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "github:1"})
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdateAdvancesRevision() {
	p := s.createPlayer("github:1", "Chunky")
	oldRev := p.Revision

	p.Location = model.StringPtr("room-7")
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, p))
	s.NotEqual(oldRev, p.Revision)

	retrieved, err := s.storage.GetPlayer(s.ctx, "github:1")
	s.Require().NoError(err)
	s.Equal("room-7", retrieved.CurrentLocation())
	s.Equal(p.Revision, retrieved.Revision)
}

func (s *StorageSuite) TestUpdateWithStaleRevisionConflicts() {
	s.createPlayer("github:1", "Chunky")

	a, _ := s.storage.GetPlayer(s.ctx, "github:1")
	b, _ := s.storage.GetPlayer(s.ctx, "github:1")

	a.Name = "First"
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, a))

	b.Name = "Second"
	err := s.storage.UpdatePlayer(s.ctx, b)
	s.ErrorIs(err, model.ErrRevisionConflict)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "github:1")
	s.Equal("First", retrieved.Name)
}

func (s *StorageSuite) TestUpdateMissingPlayer() {
	err := s.storage.UpdatePlayer(s.ctx, &model.Player{ID: "ghost"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	s.createPlayer("github:1", "Chunky")

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "github:1"))

	_, err := s.storage.GetPlayer(s.ctx, "github:1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestDeleteMissingPlayer() {
	err := s.storage.DeletePlayer(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersSorted() {
	s.createPlayer("b", "Bee")
	s.createPlayer("a", "Ant")
	s.createPlayer("c", "Cat")

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("a"), players[0].ID)
	s.Equal(model.PlayerID("b"), players[1].ID)
	s.Equal(model.PlayerID("c"), players[2].ID)
}

func (s *StorageSuite) TestListSkipsStaleIndexEntries() {
	s.createPlayer("a", "Ant")
	_, err := s.mini.SAdd("gameon:idx:players", "ghost")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("a"), players[0].ID)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))

	s.mini.Close()
	s.Error(s.storage.Ping(s.ctx))
	s.mini = nil
}
