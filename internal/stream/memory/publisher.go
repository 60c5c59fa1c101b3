package memory

import (
	"context"
	"sync"
)

// DefaultRetain is how many messages a Publisher keeps when no limit is given
const DefaultRetain = 1000

// Message is one published event
type Message struct {
	Topic   string
	Key     string
	Payload []byte
}

// Publisher is an in-memory event stream. It keeps the most recent messages
// so that a server running without a broker does not grow without bound.
type Publisher struct {
	mu       sync.Mutex
	messages []Message
	retain   int
}

// New creates a publisher that retains up to retain messages
func New(retain int) *Publisher {
	if retain <= 0 {
		retain = DefaultRetain
	}
	return &Publisher{retain: retain}
}

// Publish records the message
func (p *Publisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, Message{
		Topic:   topic,
		Key:     key,
		Payload: append([]byte(nil), payload...),
	})
	if over := len(p.messages) - p.retain; over > 0 {
		p.messages = append([]Message(nil), p.messages[over:]...)
	}
	return nil
}

// Ping always succeeds
func (p *Publisher) Ping(ctx context.Context) error {
	return nil
}

// Messages returns the retained messages for topic, oldest first
func (p *Publisher) Messages(topic string) []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []Message
	for _, m := range p.messages {
		if m.Topic == topic {
			out = append(out, m)
		}
	}
	return out
}
