package handler

import (
	"net/http"

	"github.com/gameontext/gameon-player/internal/api/middleware"
	"github.com/gameontext/gameon-player/internal/api/response"
)

// GetCredentials handles GET /players/v1/accounts/{id}/credentials
func (h *AccountHandler) GetCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.accounts.GetCredentials(r.Context(), middleware.GetAuth(r.Context()), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CredentialsFromModel(creds.SharedSecret, creds.Email))
}

// RotateSecret handles PUT /players/v1/accounts/{id}/credentials/sharedSecret
func (h *AccountHandler) RotateSecret(w http.ResponseWriter, r *http.Request) {
	player, err := h.accounts.RotateSecret(r.Context(), middleware.GetAuth(r.Context()), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// UpdateEmail handles PUT /players/v1/accounts/{id}/credentials/email
func (h *AccountHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	player, err := h.accounts.UpdateEmail(r.Context(), middleware.GetAuth(r.Context()), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
