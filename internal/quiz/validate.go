package quiz

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizforge/quizforge/internal/model"
)

// questionItem mirrors one element of the model's questions array.
// Pointer fields distinguish absent from zero-valued.
type questionItem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex *int     `json:"correctOptionIndex"`
	Answer             *string  `json:"answer"`
	Explanation        string   `json:"explanation"`
}

// ParseQuestions validates the raw candidate text against the strict
// response contract for the requested question type. Items that fail
// their contract are logged and dropped; the batch as a whole fails
// only when it is malformed or nothing survives.
func ParseQuestions(raw string, qt model.QuestionType) ([]model.Question, error) {
	clean := stripFences(raw)
	if !strings.HasPrefix(clean, "{") || !strings.HasSuffix(clean, "}") {
		return nil, fmt.Errorf("%w: %s", ErrMalformedJSON, snippet(clean))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	rawQuestions, ok := envelope["questions"]
	if !ok {
		return nil, ErrMissingQuestions
	}
	var items []questionItem
	if err := json.Unmarshal(rawQuestions, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingQuestions, err)
	}

	var questions []model.Question
	for i, item := range items {
		q, err := item.toQuestion(qt)
		if err != nil {
			slog.Warn("dropping invalid question", "index", i, "error", err)
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrNoValidQuestions
	}
	return questions, nil
}

// toQuestion checks the item against the type's required-field contract
// and builds a validated Question tagged with that type.
func (item questionItem) toQuestion(qt model.QuestionType) (model.Question, error) {
	if strings.TrimSpace(item.Question) == "" {
		return model.Question{}, fmt.Errorf("missing question text")
	}

	q := model.Question{
		Type:        qt,
		Text:        item.Question,
		Explanation: item.Explanation,
	}

	switch qt {
	case model.TypeFillInBlank:
		if !strings.Contains(item.Question, model.BlankMarker) {
			return model.Question{}, fmt.Errorf("question text has no %s marker", model.BlankMarker)
		}
		if item.Answer == nil || strings.TrimSpace(*item.Answer) == "" {
			return model.Question{}, fmt.Errorf("missing answer")
		}
		q.Answer = *item.Answer

	default:
		if len(item.Options) == 0 {
			return model.Question{}, fmt.Errorf("missing options")
		}
		if item.CorrectOptionIndex == nil {
			return model.Question{}, fmt.Errorf("missing correctOptionIndex")
		}
		if *item.CorrectOptionIndex < 0 || *item.CorrectOptionIndex >= len(item.Options) {
			return model.Question{}, fmt.Errorf("correctOptionIndex %d out of range [0,%d)",
				*item.CorrectOptionIndex, len(item.Options))
		}
		q.Options = item.Options
		q.CorrectOptionIndex = *item.CorrectOptionIndex
	}

	return q, nil
}

// stripFences removes markdown code-fence markers the model sometimes
// wraps its output in.
func stripFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

func snippet(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
