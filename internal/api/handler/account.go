package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/gameontext/gameon-player/internal/api/middleware"
	"github.com/gameontext/gameon-player/internal/api/request"
	"github.com/gameontext/gameon-player/internal/api/response"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/account"
)

// AccountsPath is the collection path accounts are created under
const AccountsPath = "/players/v1/accounts"

// AccountHandler handles player account endpoints
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}

// List handles GET /players/v1/accounts
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.accounts.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if len(players) == 0 {
		response.NoContent(w)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModels(players))
}

// Create handles POST /players/v1/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("_id is required"))
		return
	}

	player, err := h.accounts.Create(r.Context(), middleware.GetAuth(r.Context()), req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, AccountsPath+"/"+url.PathEscape(string(player.ID)), response.PlayerFromModel(player))
}

// Get handles GET /players/v1/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac := middleware.GetAuth(r.Context())
	id := playerID(r)

	player, err := h.accounts.Get(r.Context(), ac, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerView(player, h.accounts.CanViewCredentials(ac, id)))
}

// Update handles PUT /players/v1/accounts/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.accounts.Update(r.Context(), middleware.GetAuth(r.Context()), playerID(r), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /players/v1/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), middleware.GetAuth(r.Context()), playerID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Locations handles GET /players/v1/locations
func (h *AccountHandler) Locations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	locations, err := h.accounts.Locations(r.Context(), model.PlayerID(q.Get("playerId")), q.Get("siteId"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocationsFromModel(locations))
}
