package events

import "github.com/gameontext/gameon-player/internal/model"

// Discard drops every event. It stands in for a Dispatcher when events are disabled.
type Discard struct{}

// Enqueue does nothing
func (Discard) Enqueue(model.Event) {}
