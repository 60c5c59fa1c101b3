package request

import "github.com/gameontext/gameon-player/internal/model"

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	FavoriteColor string  `json:"favoriteColor"`
	Email         *string `json:"email,omitempty"`
}

// ToModel converts the request to a player record
func (r CreatePlayerRequest) ToModel() model.Player {
	return model.Player{
		ID:            model.PlayerID(r.ID),
		Name:          r.Name,
		FavoriteColor: r.FavoriteColor,
		Email:         r.Email,
	}
}

// UpdatePlayerRequest is the request body for updating a player.
// Fields that are absent are left unchanged.
type UpdatePlayerRequest = model.PlayerPatch

// UpdateLocationRequest is the request body for a location change
type UpdateLocationRequest = model.LocationChange
