package model

import "time"

// EventType identifies the type of account change event
type EventType string

const (
	EventCreate         EventType = "CREATE"
	EventUpdate         EventType = "UPDATE"
	EventUpdateLocation EventType = "UPDATE_LOCATION"
	EventUpdateAPIKey   EventType = "UPDATE_APIKEY"
	EventUpdateEmail    EventType = "UPDATE_EMAIL"
	EventDelete         EventType = "DELETE"
)

// Event is emitted after an account mutation has committed
type Event struct {
	ID        string
	Type      EventType
	PlayerID  PlayerID
	Player    Player // snapshot at commit time
	Origin    *string
	Timestamp time.Time
}
