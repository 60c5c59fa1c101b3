package handler

import (
	"errors"
	"net/http"

	"github.com/gameontext/gameon-player/internal/api/middleware"
	"github.com/gameontext/gameon-player/internal/api/request"
	"github.com/gameontext/gameon-player/internal/api/response"
	"github.com/gameontext/gameon-player/internal/model"
)

// GetLocation handles GET /players/v1/accounts/{id}/location
func (h *AccountHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.accounts.GetLocation(r.Context(), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Location{Location: location})
}

// UpdateLocation handles PUT /players/v1/accounts/{id}/location.
// A failed precondition answers 409 with the location the player is actually at.
func (h *AccountHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateLocationRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	location, err := h.accounts.UpdateLocation(r.Context(), middleware.GetAuth(r.Context()), playerID(r), req)
	if err != nil {
		var conflict *model.LocationConflictError
		if errors.As(err, &conflict) {
			response.JSON(w, http.StatusConflict, response.Location{Location: conflict.Current})
			return
		}
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Location{Location: location})
}
