package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gameontext/gameon-player/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) createPlayer(id, name string) *model.Player {
	p := &model.Player{
		ID:            model.PlayerID(id),
		Name:          name,
		FavoriteColor: "Pink",
	}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p))
	return p
}

func (s *StorageSuite) TestCreateAndGetPlayer() {
	created := s.createPlayer("dummy.1", "Chunky")
	s.NotEmpty(created.Revision)

	retrieved, err := s.storage.GetPlayer(s.ctx, "dummy.1")
	s.Require().NoError(err)
	s.Equal("Chunky", retrieved.Name)
	s.Equal(created.Revision, retrieved.Revision)
}

func (s *StorageSuite) TestCreateDuplicateFails() {
	s.createPlayer("dummy.1", "Chunky")

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "dummy.1"})
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetReturnsCopy() {
	s.createPlayer("dummy.1", "Chunky")

	first, _ := s.storage.GetPlayer(s.ctx, "dummy.1")
	first.Name = "Changed"
	first.Location = model.StringPtr("elsewhere")

	second, _ := s.storage.GetPlayer(s.ctx, "dummy.1")
	s.Equal("Chunky", second.Name)
	s.Nil(second.Location)
}

func (s *StorageSuite) TestUpdateAdvancesRevision() {
	p := s.createPlayer("dummy.1", "Chunky")
	oldRev := p.Revision

	p.Name = "Kitten"
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, p))
	s.NotEqual(oldRev, p.Revision)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "dummy.1")
	s.Equal("Kitten", retrieved.Name)
	s.Equal(p.Revision, retrieved.Revision)
}

func (s *StorageSuite) TestUpdateWithStaleRevisionConflicts() {
	s.createPlayer("dummy.1", "Chunky")

	a, _ := s.storage.GetPlayer(s.ctx, "dummy.1")
	b, _ := s.storage.GetPlayer(s.ctx, "dummy.1")

	a.Name = "First"
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, a))

	b.Name = "Second"
	err := s.storage.UpdatePlayer(s.ctx, b)
	s.ErrorIs(err, model.ErrRevisionConflict)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "dummy.1")
	s.Equal("First", retrieved.Name)
}

func (s *StorageSuite) TestUpdateMissingPlayer() {
	err := s.storage.UpdatePlayer(s.ctx, &model.Player{ID: "ghost", Revision: "1-a"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestConcurrentUpdatesExactlyOneWins() {
	s.createPlayer("dummy.1", "Chunky")

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	snapshots := make([]*model.Player, writers)
	for i := range snapshots {
		snapshots[i], _ = s.storage.GetPlayer(s.ctx, "dummy.1")
	}

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(p *model.Player) {
			defer wg.Done()
			p.Name = "writer"
			results <- s.storage.UpdatePlayer(s.ctx, p)
		}(snapshots[i])
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrRevisionConflict)
		}
	}
	s.Equal(1, succeeded)
}

func (s *StorageSuite) TestDeletePlayer() {
	s.createPlayer("dummy.1", "Chunky")

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "dummy.1"))

	_, err := s.storage.GetPlayer(s.ctx, "dummy.1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
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
	s.Equal(model.PlayerID("c"), players[2].ID)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}
