package model

// PlayerID uniquely identifies a player account (usually "provider:userid")
type PlayerID string

// FirstLocation is the location reported for players that have never moved
const FirstLocation = "firstroom"

// SecretRevoked marks a shared secret as permanently denied.
// A record holding this value can never have its secret regenerated.
const SecretRevoked = "ACCESS_DENIED"

// Audience distinguishes end-user client tokens from trusted server tokens
type Audience string

const (
	AudienceClient Audience = "client"
	AudienceServer Audience = "server"
)

// Player is the canonical stored account record
type Player struct {
	ID            PlayerID `json:"_id"`
	Revision      string   `json:"_rev,omitempty"`
	Name          string   `json:"name"`
	FavoriteColor string   `json:"favoriteColor"`
	Location      *string  `json:"location,omitempty"`
	SharedSecret  *string  `json:"apiKey,omitempty"`
	Email         *string  `json:"email,omitempty"`
}

// Clone returns a deep copy so callers never share optional fields
func (p *Player) Clone() *Player {
	c := *p
	c.Location = cloneString(p.Location)
	c.SharedSecret = cloneString(p.SharedSecret)
	c.Email = cloneString(p.Email)
	return &c
}

// CurrentLocation returns the stored location, or FirstLocation when none is stored
func (p *Player) CurrentLocation() string {
	if p.Location == nil {
		return FirstLocation
	}
	return *p.Location
}

// IsSecretRevoked reports whether the secret has been permanently denied
func (p *Player) IsSecretRevoked() bool {
	return p.SharedSecret != nil && *p.SharedSecret == SecretRevoked
}

// PlayerPatch is a proposed change to a player's display attributes. Absent
// fields are nil. ID and Revision are only checked against the stored record,
// never copied. Credentials have their own operations and are not patchable.
type PlayerPatch struct {
	ID            *PlayerID `json:"_id,omitempty"`
	Revision      *string   `json:"_rev,omitempty"`
	Name          *string   `json:"name,omitempty"`
	FavoriteColor *string   `json:"favoriteColor,omitempty"`
}

// LocationChange is a compare-and-swap request for a player's location
type LocationChange struct {
	OldLocation string  `json:"oldLocation"`
	NewLocation string  `json:"newLocation"`
	Origin      *string `json:"origin,omitempty"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
