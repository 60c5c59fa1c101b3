package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gameontext/gameon-player/internal/model"
)

func TestPolicyAuthorized(t *testing.T) {
	policy := NewPolicy("game-on.org")
	ids := []model.PlayerID{"github:1", "github:2", "twitter:1", "game-on.org"}

	for _, caller := range ids {
		for _, target := range ids {
			ac := Authenticated(Claims{Subject: caller})
			want := caller == target || caller == "game-on.org"
			assert.Equal(t, want, policy.Authorized(ac, target), "caller=%s target=%s", caller, target)
		}
	}
}

func TestPolicyAnonymousNeverAuthorized(t *testing.T) {
	policy := NewPolicy("game-on.org")

	assert.False(t, policy.Authorized(Anonymous(), "github:1"))
	assert.False(t, policy.Authorized(Anonymous(), ""))
	assert.False(t, policy.Authorized(Anonymous(), "game-on.org"))
	assert.False(t, policy.IsSystem(Anonymous()))
}

func TestPolicyDefaultSystemID(t *testing.T) {
	policy := NewPolicy("")

	assert.Equal(t, DefaultSystemID, policy.SystemID())
	assert.True(t, policy.IsSystem(Authenticated(Claims{Subject: DefaultSystemID})))
	assert.False(t, policy.IsSystem(Authenticated(Claims{Subject: "github:1"})))
}

func TestAnonymousContextDefaults(t *testing.T) {
	ac := Anonymous()

	assert.False(t, ac.IsAuthenticated())
	assert.False(t, ac.IsServer())
	assert.Equal(t, model.AudienceClient, ac.Audience())
	assert.Empty(t, ac.Email())
}
