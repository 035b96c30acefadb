package quiz

import (
	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/model"
)

// Fallback returns a hardcoded, always-valid quiz for the requested
// type. Served whenever AI-based generation fails at any stage, so the
// user always gets something renderable.
func Fallback(topic, difficulty string, qt model.QuestionType) *model.Quiz {
	var questions []model.Question
	if qt == model.TypeFillInBlank {
		questions = []model.Question{{
			Type:        model.TypeFillInBlank,
			Text:        "The capital of France is ____.",
			Answer:      "Paris",
			Explanation: "Paris is the capital and most populous city of France.",
		}}
	} else {
		questions = []model.Question{{
			Type:               model.TypeMultipleChoice,
			Text:               "What does AI stand for?",
			Options:            []string{"Artificial Intelligence", "Automated Input", "None"},
			CorrectOptionIndex: 0,
			Explanation:        "'AI' is the acronym for 'Artificial Intelligence'.",
		}}
	}

	return &model.Quiz{
		ID:         uuid.NewString(),
		Topic:      topic,
		Difficulty: difficulty,
		Type:       qt,
		Questions:  questions,
	}
}
