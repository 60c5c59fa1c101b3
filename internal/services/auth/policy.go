package auth

import "github.com/gameontext/gameon-player/internal/model"

// DefaultSystemID is the identity trusted to act on behalf of any player
const DefaultSystemID model.PlayerID = "game-on.org"

// Policy decides whether a caller may act on a player's record
type Policy struct {
	systemID model.PlayerID
}

// NewPolicy creates a policy with the given system identity
func NewPolicy(systemID model.PlayerID) Policy {
	if systemID == "" {
		systemID = DefaultSystemID
	}
	return Policy{systemID: systemID}
}

// SystemID returns the configured system identity
func (p Policy) SystemID() model.PlayerID {
	return p.systemID
}

// Authorized reports whether the caller is the target player or the system identity.
// An unauthenticated caller is never authorized.
func (p Policy) Authorized(ac AuthContext, target model.PlayerID) bool {
	id, ok := ac.Identity()
	if !ok {
		return false
	}
	return id == target || id == p.systemID
}

// IsSystem reports whether the caller is the system identity
func (p Policy) IsSystem(ac AuthContext) bool {
	id, ok := ac.Identity()
	return ok && id == p.systemID
}
