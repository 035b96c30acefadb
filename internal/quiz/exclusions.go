package quiz

import (
	"strings"

	"github.com/quizforge/quizforge/internal/model"
)

// HistoryStore reads a user's past quiz results, most recent first.
type HistoryStore interface {
	ResultsByUser(username string) ([]model.QuizResult, error)
}

// Exclusions collects the question texts the user has already seen on
// this topic. Topic matching is case-insensitive; duplicates are
// removed keeping first-seen order. The list is advisory: it goes into
// the prompt, the validator never re-checks for repeats.
func Exclusions(results []model.QuizResult, topic string) []string {
	var excluded []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !strings.EqualFold(r.Topic, topic) {
			continue
		}
		for _, qr := range r.Questions {
			if seen[qr.QuestionText] {
				continue
			}
			seen[qr.QuestionText] = true
			excluded = append(excluded, qr.QuestionText)
		}
	}
	return excluded
}
