package handler

import (
	"net/http"

	"github.com/gameontext/gameon-player/internal/api/response"
	"github.com/gameontext/gameon-player/internal/services/names"
)

// NamesHandler serves name and color suggestions
type NamesHandler struct {
	generator *names.Generator
}

// NewNamesHandler creates a new names handler
func NewNamesHandler(generator *names.Generator) *NamesHandler {
	return &NamesHandler{generator: generator}
}

// Names handles GET /players/v1/name
func (h *NamesHandler) Names(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.generator.Names())
}

// Colors handles GET /players/v1/color
func (h *NamesHandler) Colors(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.generator.Colors())
}
