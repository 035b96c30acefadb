package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appI18n "github.com/quizforge/quizforge/internal/i18n"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/quiz"
)

// maxUploadBytes caps the multipart form size for document uploads.
const maxUploadBytes = 32 << 20

// questionView is a question as shown to the quiz taker: no correct
// answer, no explanation.
type questionView struct {
	Type     model.QuestionType `json:"type"`
	Question string             `json:"question"`
	Options  []string           `json:"options,omitempty"`
}

type quizView struct {
	ID         string             `json:"id"`
	Topic      string             `json:"topic,omitempty"`
	Difficulty string             `json:"difficulty"`
	Type       model.QuestionType `json:"type"`
	Questions  []questionView     `json:"questions"`
	Note       string             `json:"note,omitempty"`
}

func viewOf(q *model.Quiz, note string) quizView {
	v := quizView{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Note:       note,
	}
	for _, question := range q.Questions {
		v.Questions = append(v.Questions, questionView{
			Type:     question.Type,
			Question: question.Text,
			Options:  question.Options,
		})
	}
	return v
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	count, err := strconv.Atoi(r.FormValue("numberOfQuestions"))
	if err != nil || count <= 0 {
		count = h.config.DefaultCount
	}

	req := quiz.Request{
		Topic:      r.FormValue("topic"),
		Count:      count,
		Difficulty: r.FormValue("difficulty"),
		Type:       model.ParseQuestionType(r.FormValue("type")),
		Username:   user.Username,
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		if header.Size > 0 {
			req.File = file
			req.Filename = header.Filename
		}
	}

	q, fellBack, err := h.generator.GenerateQuiz(r.Context(), req)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidRequest) {
			respondError(w, r, http.StatusBadRequest, "InvalidRequest")
			return
		}
		// GenerateQuiz absorbs everything else into the fallback.
		slog.Error("unexpected generation error", "error", err)
		respondError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	cookie, _ := r.Cookie(sessionCookieName)
	h.storePending(cookie.Value, q)

	note := ""
	if fellBack {
		note = appI18n.T(r.Context(), "FallbackNotice")
	}
	respondJSON(w, http.StatusOK, viewOf(q, note))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	var body struct {
		Answers map[int]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	cookie, _ := r.Cookie(sessionCookieName)
	q := h.takePending(cookie.Value)
	if q == nil {
		respondError(w, r, http.StatusBadRequest, "NoActiveQuiz")
		return
	}

	result := quiz.Grade(q, body.Answers, user.Username)
	if err := h.store.SaveResult(result); err != nil {
		slog.Error("failed to save quiz result", "error", err)
		respondError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	results, err := h.store.ResultsByUser(user.Username)
	if err != nil {
		slog.Error("failed to load history", "username", user.Username, "error", err)
		respondError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if results == nil {
		results = []model.QuizResult{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total":   len(results),
		"results": results,
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	results, err := h.store.ResultsByUser(user.Username)
	if err != nil {
		slog.Error("failed to load profile stats", "username", user.Username, "error", err)
		respondError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	respondJSON(w, http.StatusOK, profileStats(results))
}

// profileStats aggregates a user's history into summary numbers plus
// the five most recent results.
func profileStats(results []model.QuizResult) model.ProfileStats {
	stats := model.ProfileStats{
		TotalQuizzes: len(results),
		Recent:       []model.QuizResult{},
	}

	totalScore := 0
	for _, r := range results {
		totalScore += r.Score
		stats.TotalQuestions += r.Total
	}
	if stats.TotalQuestions > 0 {
		stats.AverageScore = 100.0 * float64(totalScore) / float64(stats.TotalQuestions)
	}

	recent := results
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.Recent = append(stats.Recent, recent...)

	return stats
}
