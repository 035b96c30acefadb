// Package handler exposes the HTTP API: login, quiz generation and
// submission, history and profile statistics. Responses are JSON.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/quizforge/quizforge/internal/i18n"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/store"
)

// Config holds runtime handler parameters set via CLI flags.
type Config struct {
	SecureCookies bool
	DefaultCount  int
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	generator *quiz.Generator
	config    Config

	// pending maps an auth session token to the quiz generated for it
	// and not yet submitted. Submitting consumes the entry; entries
	// older than pendingQuizTTL are dropped.
	mu      sync.Mutex
	pending map[string]pendingQuiz
}

// pendingQuizTTL bounds how long an unsubmitted quiz is held.
const pendingQuizTTL = time.Hour

type pendingQuiz struct {
	quiz    *model.Quiz
	created time.Time
}

// New creates a new Handler.
func New(s *store.Store, g *quiz.Generator, cfg Config) *Handler {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 5
	}
	return &Handler{
		store:     s,
		generator: g,
		config:    cfg,
		pending:   make(map[string]pendingQuiz),
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/quiz/generate", h.handleGenerate)
		r.Post("/quiz/submit", h.handleSubmit)
		r.Get("/history", h.handleHistory)
		r.Get("/profile", h.handleProfile)
	})
}

func (h *Handler) storePending(token string, q *model.Quiz) {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Sweep abandoned quizzes so the map does not grow with sessions
	// that generated but never submitted.
	now := time.Now()
	for tok, entry := range h.pending {
		if now.Sub(entry.created) > pendingQuizTTL {
			delete(h.pending, tok)
		}
	}
	h.pending[token] = pendingQuiz{quiz: q, created: now}
}

// takePending removes and returns the pending quiz for a session, or
// nil when there is none or it has expired.
func (h *Handler) takePending(token string) *model.Quiz {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.pending[token]
	delete(h.pending, token)
	if !ok || time.Since(entry.created) > pendingQuizTTL {
		return nil
	}
	return entry.quiz
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes a localized error message.
func respondError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	respondJSON(w, status, map[string]string{"error": appI18n.T(r.Context(), msgID)})
}
