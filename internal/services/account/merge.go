package account

import "github.com/gameontext/gameon-player/internal/model"

// MergeUpdate returns the record to persist when patch is applied to existing
// under the given audience. existing is not modified.
//
// Client tokens may change the display attributes only. Server tokens change
// nothing. Identity, revision, location and credentials are never taken from a
// patch: location moves only through UpdateLocation, the secret only through
// RotateSecret and the email only through UpdateEmail.
func MergeUpdate(existing model.Player, patch model.PlayerPatch, aud model.Audience) model.Player {
	merged := *existing.Clone()

	if aud == model.AudienceServer {
		return merged
	}
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.FavoriteColor != nil {
		merged.FavoriteColor = *patch.FavoriteColor
	}

	return merged
}
