package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/model"
)

// stubCompleter records the prompt it received and returns a canned
// response or error.
type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubHistory struct {
	results []model.QuizResult
	err     error
}

func (s *stubHistory) ResultsByUser(string) ([]model.QuizResult, error) {
	return s.results, s.err
}

const validMCResponse = `{"questions":[{"question":"Who founded Rome?","options":["Romulus","Caesar","Nero","Augustus"],"correctOptionIndex":0}]}`

func TestGenerateQuizSuccess(t *testing.T) {
	completer := &stubCompleter{response: validMCResponse}
	g := NewGenerator(completer, nil)

	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Topic:      "Rome",
		Count:      1,
		Difficulty: "Easy",
		Type:       model.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if fellBack {
		t.Error("successful generation should not fall back")
	}
	if q.Topic != "Rome" || q.Difficulty != "Easy" {
		t.Errorf("quiz metadata not carried: %+v", q)
	}
	if len(q.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(q.Questions))
	}
	if q.ID == "" {
		t.Error("quiz should get an ID")
	}
	if !strings.Contains(completer.prompt, "on the topic of 'Rome'") {
		t.Errorf("prompt should carry the topic context, got %q", completer.prompt)
	}
}

func TestGenerateQuizInvalidRequest(t *testing.T) {
	g := NewGenerator(&stubCompleter{response: validMCResponse}, nil)

	tests := []struct {
		name  string
		topic string
	}{
		{"empty topic", ""},
		{"blank topic", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := g.GenerateQuiz(context.Background(), Request{Topic: tt.topic, Count: 1})
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestGenerateQuizFallbackOnUpstreamFailure(t *testing.T) {
	g := NewGenerator(&stubCompleter{err: llm.ErrUpstream}, nil)

	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Topic:      "Rome",
		Count:      3,
		Difficulty: "Hard",
		Type:       model.TypeFillInBlank,
	})
	if err != nil {
		t.Fatalf("upstream failure must not surface to the caller: %v", err)
	}
	if !fellBack {
		t.Error("expected fallback substitution")
	}
	if len(q.Questions) == 0 {
		t.Fatal("fallback quiz must be non-empty")
	}
	if q.Type != model.TypeFillInBlank {
		t.Errorf("fallback type = %q, want fill in blank", q.Type)
	}
	for _, question := range q.Questions {
		if _, ok := question.CorrectAnswerText(); !ok {
			t.Errorf("fallback question %q must be well-formed", question.Text)
		}
	}
}

func TestGenerateQuizFallbackOnGarbageResponse(t *testing.T) {
	g := NewGenerator(&stubCompleter{response: "Sorry, I cannot help with that."}, nil)

	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Topic: "Rome", Count: 2, Type: model.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if !fellBack || len(q.Questions) == 0 {
		t.Error("garbage response should produce a non-empty fallback quiz")
	}
}

func TestGenerateQuizEmbedsExclusions(t *testing.T) {
	completer := &stubCompleter{response: validMCResponse}
	history := &stubHistory{results: []model.QuizResult{
		historyResult("Rome", "Who founded Rome?", "When was Rome founded?"),
		historyResult("Rome", "Who founded Rome?"),
		historyResult("Paris", "Where is the Louvre?"),
	}}
	g := NewGenerator(completer, history)

	_, _, err := g.GenerateQuiz(context.Background(), Request{
		Topic: "Rome", Count: 2, Type: model.TypeMultipleChoice, Username: "alice",
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}

	if !strings.Contains(completer.prompt, "Who founded Rome?") ||
		!strings.Contains(completer.prompt, "When was Rome founded?") {
		t.Errorf("prompt should embed past Rome questions, got %q", completer.prompt)
	}
	if strings.Contains(completer.prompt, "Where is the Louvre?") {
		t.Error("prompt must not embed questions from other topics")
	}
}

func TestGenerateQuizSkipsExclusionsWithoutUser(t *testing.T) {
	completer := &stubCompleter{response: validMCResponse}
	history := &stubHistory{err: errors.New("history store should not be queried")}
	g := NewGenerator(completer, history)

	if _, _, err := g.GenerateQuiz(context.Background(), Request{
		Topic: "Rome", Count: 1, Type: model.TypeMultipleChoice,
	}); err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if strings.Contains(completer.prompt, "Do NOT repeat") {
		t.Error("anonymous request must not carry an exclusion clause")
	}
}

func TestGenerateQuizFileContext(t *testing.T) {
	completer := &stubCompleter{response: validMCResponse}
	g := NewGenerator(completer, nil)

	doc := strings.NewReader("The Roman Empire was founded in 27 BC.")
	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Count:    1,
		Type:     model.TypeMultipleChoice,
		File:     doc,
		Filename: "history.txt",
		Username: "alice",
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if fellBack {
		t.Error("readable document should not trigger fallback")
	}
	if q.Topic != "" {
		t.Errorf("file-only quiz should have no topic, got %q", q.Topic)
	}
	if !strings.Contains(completer.prompt, "Based on the provided document: The Roman Empire") {
		t.Errorf("prompt should carry the document context, got %q", completer.prompt)
	}
	// File-only requests have no topic to match history against, so no
	// exclusion clause even for a known user.
	if strings.Contains(completer.prompt, "Do NOT repeat") {
		t.Error("file-only request must not carry an exclusion clause")
	}
}

func TestGenerateQuizFallbackOnUnsupportedFile(t *testing.T) {
	g := NewGenerator(&stubCompleter{response: validMCResponse}, nil)

	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Count:    1,
		Type:     model.TypeMultipleChoice,
		File:     strings.NewReader("x"),
		Filename: "slides.pptx",
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if !fellBack || len(q.Questions) == 0 {
		t.Error("unsupported file type should produce a fallback quiz")
	}
}

func TestGenerateQuizFallbackOnHistoryFailure(t *testing.T) {
	history := &stubHistory{err: errors.New("db gone")}
	g := NewGenerator(&stubCompleter{response: validMCResponse}, history)

	q, fellBack, err := g.GenerateQuiz(context.Background(), Request{
		Topic: "Rome", Count: 1, Type: model.TypeMultipleChoice, Username: "alice",
	})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if !fellBack || len(q.Questions) == 0 {
		t.Error("history failure should produce a fallback quiz")
	}
}

func TestBuildContextTruncation(t *testing.T) {
	const prefix = "Based on the provided document: "

	tests := []struct {
		name string
		char string
	}{
		{"ascii", "a"},
		{"multibyte", "世"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(nil, nil)
			text := strings.Repeat(tt.char, 30000)

			got, err := g.buildContext(Request{File: strings.NewReader(text), Filename: "big.txt"})
			if err != nil {
				t.Fatalf("buildContext: %v", err)
			}

			body := strings.TrimPrefix(got, prefix)
			if n := utf8.RuneCountInString(body); n != maxContextChars {
				t.Errorf("context length = %d characters, want exactly %d", n, maxContextChars)
			}
			if !utf8.ValidString(body) {
				t.Error("truncation produced invalid UTF-8")
			}
			if body != strings.Repeat(tt.char, maxContextChars) {
				t.Error("context must be the first 25000 characters, untransformed")
			}
		})
	}
}

func TestBuildContextShortDocumentUntruncated(t *testing.T) {
	g := NewGenerator(nil, nil)
	got, err := g.buildContext(Request{File: strings.NewReader("short text"), Filename: "s.txt"})
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}
	if got != "Based on the provided document: short text" {
		t.Errorf("unexpected context: %q", got)
	}
}

func TestFallbackQuizzesAreValid(t *testing.T) {
	for _, qt := range []model.QuestionType{model.TypeMultipleChoice, model.TypeFillInBlank} {
		t.Run(string(qt), func(t *testing.T) {
			q := Fallback("T", "Easy", qt)
			if len(q.Questions) == 0 {
				t.Fatal("fallback quiz must be non-empty")
			}
			if q.Type != qt {
				t.Errorf("type = %q, want %q", q.Type, qt)
			}
			for _, question := range q.Questions {
				if question.Type != qt {
					t.Errorf("question type = %q, want %q", question.Type, qt)
				}
				if _, ok := question.CorrectAnswerText(); !ok {
					t.Errorf("fallback question %q is malformed", question.Text)
				}
			}
		})
	}
}

func TestFallbackFillInBlankHasMarker(t *testing.T) {
	q := Fallback("", "Easy", model.TypeFillInBlank)
	if !strings.Contains(q.Questions[0].Text, model.BlankMarker) {
		t.Error("fill-in-the-blank fallback must contain the blank marker")
	}
}
