package store

import (
	"fmt"
	"log/slog"

	"github.com/quizforge/quizforge/internal/model"
)

// SaveResult stores a quiz result with its per-question rows in one
// transaction.
func (s *Store) SaveResult(r model.QuizResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO quiz_results (id, username, topic, score, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Username, r.Topic, r.Score, r.Total, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}

	for i, qr := range r.Questions {
		_, err = tx.Exec(
			`INSERT INTO question_results
			 (result_id, position, question_text, user_answer, correct_answer, correct, explanation)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, qr.QuestionText, qr.UserAnswer, qr.CorrectAnswer, qr.Correct, qr.Explanation,
		)
		if err != nil {
			return fmt.Errorf("insert question result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	slog.Info("saved quiz result",
		"id", r.ID, "username", r.Username, "topic", r.Topic, "score", r.Score, "total", r.Total)
	return nil
}

// ResultsByUser returns a user's quiz results, most recent first, with
// question rows in submission order.
func (s *Store) ResultsByUser(username string) ([]model.QuizResult, error) {
	rows, err := s.db.Query(
		`SELECT id, username, topic, score, total, created_at
		 FROM quiz_results WHERE username = ? ORDER BY created_at DESC`, username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		var r model.QuizResult
		if err := rows.Scan(&r.ID, &r.Username, &r.Topic, &r.Score, &r.Total, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		questions, err := s.questionResults(results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Questions = questions
	}
	return results, nil
}

func (s *Store) questionResults(resultID string) ([]model.QuestionResult, error) {
	rows, err := s.db.Query(
		`SELECT question_text, user_answer, correct_answer, correct, explanation
		 FROM question_results WHERE result_id = ? ORDER BY position`, resultID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.QuestionResult
	for rows.Next() {
		var qr model.QuestionResult
		if err := rows.Scan(&qr.QuestionText, &qr.UserAnswer, &qr.CorrectAnswer, &qr.Correct, &qr.Explanation); err != nil {
			return nil, err
		}
		questions = append(questions, qr)
	}
	return questions, rows.Err()
}
