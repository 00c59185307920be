package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordbook/internal/transport/middleware"
)

// NewRouter mounts the words and health routes and wraps them in the request
// middleware. Panics are recovered inside the access logger so they are
// logged with their 500 status.
func NewRouter(words *WordsHandler, health *HealthHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	words.Register(mux)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)
}
