// Package httpx serves a development stand-in for the users API.
package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds everything the users API router needs.
type RouterServices struct {
	Profiles    ProfileService
	Tokens      TokenTable
	ShareRoleID string
	Logger      *slog.Logger // optional
}

// NewRouter creates the users API router with logging, recovery and request ids.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	users := &UserHandlers{Svc: services.Profiles, ShareRoleID: services.ShareRoleID, Logger: logger}
	auth := RequireToken(services.Tokens)

	mux.Handle("GET /users/me", auth(http.HandlerFunc(users.Me)))
	mux.Handle("PATCH /users/me/track/page", auth(http.HandlerFunc(users.TrackPage)))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Chain(mux, RequestID(), Recover(logger), Logging(logger))
}
