package quiz

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/model"
)

// Grade scores submitted answers against the quiz's recorded correct
// answers. Answers are keyed by question position. It is total over any
// submission shape: missing or blank answers are recorded as
// "Not Answered" and incorrect, never an error.
//
// Fill-in-the-blank answers compare case-insensitively; multiple choice
// compares the exact option text, case and whitespace included.
func Grade(q *model.Quiz, answers map[int]string, username string) model.QuizResult {
	results := make([]model.QuestionResult, 0, len(q.Questions))
	score := 0

	for i, question := range q.Questions {
		correctAnswer, _ := question.CorrectAnswerText()
		userAnswer := answers[i]
		answered := strings.TrimSpace(userAnswer) != ""

		// The submitted text is compared as-is. Multiple choice is an
		// exact match against the option text; only the answered check
		// tolerates whitespace.
		correct := false
		if answered {
			if question.Type == model.TypeFillInBlank {
				correct = strings.EqualFold(userAnswer, correctAnswer)
			} else {
				correct = userAnswer == correctAnswer
			}
		}
		if correct {
			score++
		}

		recorded := userAnswer
		if !answered {
			recorded = model.NotAnswered
		}

		results = append(results, model.QuestionResult{
			QuestionText:  question.Text,
			UserAnswer:    recorded,
			CorrectAnswer: correctAnswer,
			Correct:       correct,
			Explanation:   question.Explanation,
		})
	}

	return model.QuizResult{
		ID:        uuid.NewString(),
		Username:  username,
		Topic:     q.Topic,
		Score:     score,
		Total:     len(q.Questions),
		CreatedAt: time.Now(),
		Questions: results,
	}
}
