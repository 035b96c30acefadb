package model

import (
	"context"
	"time"
)

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleStudent is a regular quiz-taking user.
	UserRoleStudent UserRole = "student"
	// UserRoleAdmin is an admin user role.
	UserRoleAdmin UserRole = "admin"
)

// User represents a system user.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

// QuestionType selects the question format and its validation and
// grading rules.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeFillInBlank    QuestionType = "fill_in_blank"
)

// BlankMarker is the literal placeholder a fill-in-the-blank question
// text must contain.
const BlankMarker = "____"

// ParseQuestionType maps a client-supplied type selector to a known
// question type. Anything unrecognized becomes multiple choice.
func ParseQuestionType(s string) QuestionType {
	if QuestionType(s) == TypeFillInBlank {
		return TypeFillInBlank
	}
	return TypeMultipleChoice
}

// Question is a single quiz item. Which fields are meaningful depends
// on Type: multiple choice uses Options and CorrectOptionIndex, fill in
// the blank uses Answer. Questions served to users have always passed
// their type's validation.
type Question struct {
	Type               QuestionType `json:"type"`
	Text               string       `json:"question"`
	Options            []string     `json:"options,omitempty"`
	CorrectOptionIndex int          `json:"correctOptionIndex,omitempty"`
	Answer             string       `json:"answer,omitempty"`
	Explanation        string       `json:"explanation,omitempty"`
}

// CorrectAnswerText returns the canonical correct answer for grading.
// The second return is false when the question is malformed for its
// type, which a validated question never is.
func (q Question) CorrectAnswerText() (string, bool) {
	if q.Type == TypeFillInBlank {
		if q.Answer == "" {
			return "", false
		}
		return q.Answer, true
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return "", false
	}
	return q.Options[q.CorrectOptionIndex], true
}

// Quiz is the immutable bundle produced by one generation request.
type Quiz struct {
	ID         string       `json:"id"`
	Topic      string       `json:"topic,omitempty"`
	Difficulty string       `json:"difficulty"`
	Type       QuestionType `json:"type"`
	Questions  []Question   `json:"questions"`
}

// NotAnswered is recorded as the user answer when a question was
// skipped or submitted blank.
const NotAnswered = "Not Answered"

// QuestionResult is one graded quiz item.
type QuestionResult struct {
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResult aggregates one grading pass. Created once per submission
// and never mutated afterward.
type QuizResult struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Topic     string           `json:"topic,omitempty"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	CreatedAt time.Time        `json:"createdAt"`
	Questions []QuestionResult `json:"questions"`
}

// ProfileStats summarizes a user's full quiz history.
type ProfileStats struct {
	TotalQuizzes   int          `json:"totalQuizzes"`
	TotalQuestions int          `json:"totalQuestions"`
	AverageScore   float64      `json:"averageScore"`
	Recent         []QuizResult `json:"recent"`
}
