package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gameontext/gameon-player/internal/api/apierr"
	"github.com/gameontext/gameon-player/internal/middleware"
)

// Common wraps next in request logging and panic recovery. Recovery runs
// inside logging so a recovered panic is logged with its 500 status and the
// same request id.
func Common(logger *slog.Logger) func(http.Handler) http.Handler {
	logging := middleware.Logging(logger)
	recovery := middleware.Recovery(logger, writeInternalError)
	return func(next http.Handler) http.Handler {
		return logging(recovery(next))
	}
}

func writeInternalError(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
