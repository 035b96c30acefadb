package prompts

import (
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/model"
)

func TestBuildMultipleChoice(t *testing.T) {
	prompt, err := Build(model.TypeMultipleChoice, Data{
		Count:      5,
		Context:    "on the topic of 'Rome'",
		Difficulty: "Hard",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !strings.Contains(prompt, "exactly 5 multiple choice questions") {
		t.Error("prompt should demand the exact question count")
	}
	if !strings.Contains(prompt, "on the topic of 'Rome'") {
		t.Error("prompt should contain the context")
	}
	if !strings.Contains(prompt, "'Hard'") {
		t.Error("prompt should contain the difficulty")
	}
	if !strings.Contains(prompt, "correctOptionIndex") {
		t.Error("prompt should document correctOptionIndex")
	}
	if !strings.Contains(prompt, "0-based index") {
		t.Error("prompt should explain the index is 0-based")
	}
	if strings.Contains(prompt, "Do NOT repeat") {
		t.Error("prompt should not contain an exclusion clause without exclusions")
	}
}

func TestBuildFillInBlank(t *testing.T) {
	prompt, err := Build(model.TypeFillInBlank, Data{
		Count:      3,
		Context:    "Based on the provided document: some notes",
		Difficulty: "Easy",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !strings.Contains(prompt, "exactly 3 fill-in-the-blank questions") {
		t.Error("prompt should demand the exact question count")
	}
	if !strings.Contains(prompt, `"answer"`) {
		t.Error("prompt should document the answer field")
	}
	if !strings.Contains(prompt, "'____'") {
		t.Error("prompt should demand the blank marker")
	}
	if strings.Contains(prompt, "correctOptionIndex") {
		t.Error("fill-in-the-blank prompt should not mention correctOptionIndex")
	}
}

func TestBuildExclusionClause(t *testing.T) {
	excluded := []string{"Who founded Rome?", "When was Rome founded?"}
	prompt, err := Build(model.TypeMultipleChoice, Data{
		Count:      2,
		Context:    "on the topic of 'Rome'",
		Difficulty: "Medium",
		Excluded:   excluded,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !strings.Contains(prompt, "Do NOT repeat") {
		t.Error("prompt should contain the exclusion clause")
	}
	for _, q := range excluded {
		if !strings.Contains(prompt, q) {
			t.Errorf("prompt should embed excluded question %q", q)
		}
	}
}

func TestBuildSanitizesContext(t *testing.T) {
	prompt, err := Build(model.TypeMultipleChoice, Data{
		Count:      1,
		Context:    "text with \x00 control \x1b chars",
		Difficulty: "Easy",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.ContainsAny(prompt, "\x00\x1b") {
		t.Error("prompt should not contain control characters")
	}
	if !strings.Contains(prompt, "text with  control  chars") {
		t.Error("printable context text should survive sanitization")
	}
}

func TestSanitizeContextKeepsWhitespace(t *testing.T) {
	in := "line one\nline two\ttabbed"
	if got := SanitizeContext(in); got != in {
		t.Errorf("SanitizeContext(%q) = %q, want unchanged", in, got)
	}
}
