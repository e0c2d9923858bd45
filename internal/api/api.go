package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tradejournal/pkg/journal"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *journal.Core) http.Handler {
	return NewRouterWithLogger(core, nil)
}

// NewRouterWithLogger builds the HTTP API router with request logging.
func NewRouterWithLogger(core *journal.Core, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(requestLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core}

	r.Get("/api/health", h.health)

	// Identity
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)
	r.Post("/api/auth/reset-request", h.requestPasswordReset)
	r.Post("/api/auth/reset", h.completePasswordReset)
	r.Get("/api/auth/session", h.session)

	// Journal, gated by a valid session
	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/api/journal/{journalID}", h.getJournal)
		r.Get("/api/journal/{journalID}/stats", h.getStats)
		r.Put("/api/journal/{journalID}/capital", h.setCapital)
		r.Post("/api/journal/{journalID}/trades", h.addTrade)
		r.Delete("/api/journal/{journalID}/trades/{tradeID}", h.deleteTrade)
		r.Post("/api/journal/{journalID}/close-month", h.closeMonth)
		r.Delete("/api/journal/{journalID}/months/{monthID}", h.deleteMonth)
		r.Get("/api/journal/{journalID}/export", h.exportJournal)
		r.Post("/api/journal/{journalID}/import", h.importJournal)
	})

	return r
}

type handler struct {
	core *journal.Core
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
