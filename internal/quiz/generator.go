// Package quiz implements the quiz generation pipeline and the grading
// engine. Generation assembles a context from a topic or an uploaded
// document, asks the completion endpoint for questions, validates the
// answer strictly, and falls back to a canned quiz on any failure past
// the request precondition.
package quiz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/docext"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/quiz/prompts"
)

// maxContextChars caps document text fed into the prompt, counted in
// runes. Hard cut, no summarization.
const maxContextChars = 25000

// TextCompleter is the outbound AI dependency: one prompt in, raw
// candidate text out.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator runs the generation pipeline.
type Generator struct {
	llm     TextCompleter
	history HistoryStore
}

// NewGenerator creates a Generator. history may be nil, which disables
// exclusion building.
func NewGenerator(llm TextCompleter, history HistoryStore) *Generator {
	return &Generator{llm: llm, history: history}
}

// Request describes one quiz generation request.
type Request struct {
	Topic      string
	Count      int
	Difficulty string
	Type       model.QuestionType

	// File is the optional uploaded document; Filename carries its
	// declared name for format dispatch.
	File     io.Reader
	Filename string

	// Username identifies the requesting user for exclusion building.
	// Empty skips deduplication.
	Username string
}

// GenerateQuiz runs the pipeline and always returns a usable quiz
// unless the request precondition fails: without a topic and without a
// file there is nothing to generate from, and the error is
// ErrInvalidRequest. Any later failure is logged and answered with the
// fallback quiz; the second return reports that substitution so the
// caller can attach an advisory note.
func (g *Generator) GenerateQuiz(ctx context.Context, req Request) (*model.Quiz, bool, error) {
	if req.File == nil && isBlank(req.Topic) {
		return nil, false, ErrInvalidRequest
	}

	q, err := g.generate(ctx, req)
	if err != nil {
		slog.Warn("quiz generation failed, serving fallback",
			"topic", req.Topic, "type", req.Type, "error", err)
		return Fallback(req.Topic, req.Difficulty, req.Type), true, nil
	}
	return q, false, nil
}

func (g *Generator) generate(ctx context.Context, req Request) (*model.Quiz, error) {
	promptCtx, err := g.buildContext(req)
	if err != nil {
		return nil, err
	}

	var excluded []string
	if !isBlank(req.Topic) && req.Username != "" && g.history != nil {
		results, err := g.history.ResultsByUser(req.Username)
		if err != nil {
			return nil, fmt.Errorf("load quiz history: %w", err)
		}
		excluded = Exclusions(results, req.Topic)
	}

	prompt, err := prompts.Build(req.Type, prompts.Data{
		Count:      req.Count,
		Context:    promptCtx,
		Difficulty: req.Difficulty,
		Excluded:   excluded,
	})
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(raw, req.Type)
	if err != nil {
		return nil, err
	}

	return &model.Quiz{
		ID:         uuid.NewString(),
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Type:       req.Type,
		Questions:  questions,
	}, nil
}

// buildContext produces the context phrase for the prompt: extracted
// and truncated document text when a file was uploaded, the literal
// topic otherwise.
func (g *Generator) buildContext(req Request) (string, error) {
	if req.File == nil {
		return "on the topic of '" + req.Topic + "'", nil
	}

	text, err := docext.Extract(req.File, req.Filename)
	if err != nil {
		return "", fmt.Errorf("extract document text: %w", err)
	}
	return "Based on the provided document: " + truncate(text, maxContextChars), nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) > max {
		return string([]rune(s)[:max])
	}
	return s
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
