package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, cfg Config) {
	broker := NewBroker()
	registry := NewSessionRegistry()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("OpenGuessr API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, cfg.DB))

	// Public routes.
	r.Post("/api/register", handleRegister(logger, cfg.Store, cfg.JWTSecret, cfg.JWTTTL))
	r.Post("/api/login", handleLogin(logger, cfg.Store, cfg.JWTSecret, cfg.JWTTTL))
	r.Get("/api/leaderboard", handleLeaderboard(logger, cfg.Store))
	r.Get("/api/leaderboard/events", handleLeaderboardEvents(logger, broker))

	// Account routes — bearer token required.
	r.Group(func(r chi.Router) {
		r.Use(requireAccount(cfg.Store, cfg.JWTSecret))

		r.Get("/api/me", handleMe())
		r.Post("/api/games", handleSaveGame(logger, cfg.Store, broker))
		r.Get("/api/games", handleListGames(logger, cfg.Store))

		r.Post("/api/session", handleStartSession(logger, registry, cfg.Pool, cfg.RoundsPerGame))
		r.Get("/api/session/{id}", handleSessionState(registry))
		r.Post("/api/session/{id}/guess", handleSubmitGuess(registry))
		r.Post("/api/session/{id}/next", handleAdvance(logger, registry, cfg.Store, broker))
	})

	if cfg.SPADir != "" {
		if info, err := os.Stat(cfg.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", cfg.SPADir)
			r.NotFound(handleSPA(cfg.SPADir))
		}
	}
}
