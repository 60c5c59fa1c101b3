package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gameontext/gameon-player/internal/model"
)

// Publisher writes messages to an external event stream
type Publisher interface {
	// Publish appends payload to topic, partitioned by key
	Publish(ctx context.Context, topic, key string, payload []byte) error

	// Ping reports whether the stream is reachable
	Ping(ctx context.Context) error
}

// Envelope is the wire form of a published event
type Envelope struct {
	ID        string          `json:"id"`
	Type      model.EventType `json:"type"`
	Player    model.Player    `json:"player"`
	Origin    *string         `json:"origin"`
	Timestamp time.Time       `json:"timestamp"`
}

// Encode returns the JSON envelope for e
func Encode(e model.Event) ([]byte, error) {
	return json.Marshal(Envelope{
		ID:        e.ID,
		Type:      e.Type,
		Player:    e.Player,
		Origin:    e.Origin,
		Timestamp: e.Timestamp.UTC(),
	})
}
