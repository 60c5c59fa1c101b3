package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gameontext/gameon-player/internal/api/handler"
	"github.com/gameontext/gameon-player/internal/api/middleware"
	"github.com/gameontext/gameon-player/internal/services/account"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/services/names"
)

// PathPrefix is the root of every API route
const PathPrefix = "/players/v1"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       *auth.Verifier
	AccountService *account.Service
	NameGenerator  *names.Generator
	Health         handler.Pinger
	Events         handler.EventsStatus // optional
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService)
	namesHandler := handler.NewNamesHandler(cfg.NameGenerator)
	healthHandler := handler.NewHealthHandler(cfg.Health, cfg.Events, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Verifier)

	// API subrouter with common middleware
	api := r.PathPrefix(PathPrefix).Subrouter()
	api.Use(middleware.Common(cfg.Logger))

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	// Everything else sees the caller's identity; anonymous callers get through
	routes := api.NewRoute().Subrouter()
	routes.Use(authMiddleware)

	// Account routes
	routes.HandleFunc("/accounts", accountHandler.List).Methods(http.MethodGet)
	routes.HandleFunc("/accounts", accountHandler.Create).Methods(http.MethodPost)
	routes.HandleFunc("/accounts/{id}", accountHandler.Get).Methods(http.MethodGet)
	routes.HandleFunc("/accounts/{id}", accountHandler.Update).Methods(http.MethodPut)
	routes.HandleFunc("/accounts/{id}", accountHandler.Delete).Methods(http.MethodDelete)

	// Location routes
	routes.HandleFunc("/accounts/{id}/location", accountHandler.GetLocation).Methods(http.MethodGet)
	routes.HandleFunc("/accounts/{id}/location", accountHandler.UpdateLocation).Methods(http.MethodPut)
	routes.HandleFunc("/locations", accountHandler.Locations).Methods(http.MethodGet)

	// Credential routes
	routes.HandleFunc("/accounts/{id}/credentials", accountHandler.GetCredentials).Methods(http.MethodGet)
	routes.HandleFunc("/accounts/{id}/credentials/sharedSecret", accountHandler.RotateSecret).Methods(http.MethodPut)
	routes.HandleFunc("/accounts/{id}/credentials/email", accountHandler.UpdateEmail).Methods(http.MethodPut)

	// Suggestions
	routes.HandleFunc("/name", namesHandler.Names).Methods(http.MethodGet)
	routes.HandleFunc("/color", namesHandler.Colors).Methods(http.MethodGet)

	return r
}
