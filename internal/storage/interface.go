package storage

import (
	"context"

	"github.com/gameontext/gameon-player/internal/model"
)

// Storage defines the interface for player record persistence.
// Implementations own revision tokens: every successful write assigns a new one.
type Storage interface {
	// GetPlayer returns a copy of the stored record or model.ErrPlayerNotFound
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// CreatePlayer stores a new record and sets its Revision.
	// Returns model.ErrPlayerExists if the id is taken.
	CreatePlayer(ctx context.Context, player *model.Player) error

	// UpdatePlayer replaces the record only if the stored revision still equals
	// player.Revision, then sets player.Revision to the new token.
	// Returns model.ErrRevisionConflict when another writer got there first.
	UpdatePlayer(ctx context.Context, player *model.Player) error

	// DeletePlayer removes a record or returns model.ErrPlayerNotFound
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// ListPlayers returns every stored record, ordered by id
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
}
