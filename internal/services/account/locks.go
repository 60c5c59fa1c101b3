package account

import (
	"hash/fnv"
	"sync"

	"github.com/gameontext/gameon-player/internal/model"
)

const lockStripes = 64

// stripedLock serializes work per player id without a lock per player
type stripedLock struct {
	stripes [lockStripes]sync.Mutex
}

// lock acquires the stripe for id and returns its unlock function
func (l *stripedLock) lock(id model.PlayerID) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
