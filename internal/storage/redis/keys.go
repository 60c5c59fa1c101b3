package redis

import (
	"fmt"

	"github.com/gameontext/gameon-player/internal/model"
)

// playerKey returns the Redis key for a player record
func (s *Storage) playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", s.cfg.KeyPrefix, id)
}

// playerIndexKey returns the Redis key for the SET of all player ids
func (s *Storage) playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", s.cfg.KeyPrefix)
}
