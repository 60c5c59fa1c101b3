package response

import (
	"github.com/gameontext/gameon-player/internal/model"
)

// Player is the public representation of a player account
type Player struct {
	ID            string       `json:"_id"`
	Revision      string       `json:"_rev,omitempty"`
	Name          string       `json:"name"`
	FavoriteColor string       `json:"favoriteColor"`
	Location      Location     `json:"location"`
	Credentials   *Credentials `json:"credentials"`
}

// Location is a player's current location
type Location struct {
	Location string `json:"location"`
}

// Credentials holds a player's shared secret and email
type Credentials struct {
	SharedSecret *string `json:"sharedSecret"`
	Email        *string `json:"email"`
}

// PlayerFromModel converts a player record to its full representation
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:            string(p.ID),
		Revision:      p.Revision,
		Name:          p.Name,
		FavoriteColor: p.FavoriteColor,
		Location:      Location{Location: p.CurrentLocation()},
		Credentials:   &Credentials{SharedSecret: p.SharedSecret, Email: p.Email},
	}
}

// RedactCredentials returns a copy of p without credentials
func (p Player) RedactCredentials() Player {
	p.Credentials = nil
	return p
}

// PlayerView converts a player record, keeping credentials only when showCredentials is set
func PlayerView(p *model.Player, showCredentials bool) Player {
	view := PlayerFromModel(p)
	if !showCredentials {
		return view.RedactCredentials()
	}
	return view
}

// PlayersFromModels converts player records to redacted representations
func PlayersFromModels(players []*model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p).RedactCredentials()
	}
	return result
}

// CredentialsFromModel converts stored credentials
func CredentialsFromModel(secret, email *string) Credentials {
	return Credentials{SharedSecret: secret, Email: email}
}

// Locations maps player ids to their locations
type Locations map[string]string

// LocationsFromModel converts a location map
func LocationsFromModel(m map[model.PlayerID]string) Locations {
	result := make(Locations, len(m))
	for id, loc := range m {
		result[string(id)] = loc
	}
	return result
}

// Health is the health check response. Events is omitted when no event
// stream is configured.
type Health struct {
	Status string `json:"status"`
	Events string `json:"events,omitempty"`
}

// Health status values
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"

	EventsConnected    = "CONNECTED"
	EventsDisconnected = "DISCONNECTED"
)
