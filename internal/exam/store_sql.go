package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutExam(ctx context.Context, e Exam) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO exams (id,title,created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title`,
		e.ID, e.Title, time.Now().Unix())
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,created_at FROM exams WHERE id=$1`, id)
	var e Exam
	if err := row.Scan(&e.ID, &e.Title, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, fmt.Errorf("exam %q: %w", id, ErrNotFound)
		}
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) (Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	cj, err := json.Marshal(q.Choices)
	if err != nil {
		return Question{}, err
	}
	// check the owning exam up front so a bad exam_id surfaces as a clear
	// submission error rather than a driver-specific constraint failure
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM exams WHERE id=$1`, q.ExamID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, fmt.Errorf("exam %q: %w", q.ExamID, ErrNotFound)
		}
		return Question{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions
		(id,exam_id,prompt,type,choices_json,correct_answer,image_url,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.ID, q.ExamID, q.Prompt, string(q.Type), string(cj), q.CorrectAnswer, q.ImageURL, q.CreatedAt)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, examID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,exam_id,prompt,type,choices_json,correct_answer,image_url,created_at
		FROM questions WHERE exam_id=$1 ORDER BY created_at, id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		var typ, cj string
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Prompt, &typ, &cj, &q.CorrectAnswer, &q.ImageURL, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Type = QuestionType(typ)
		if err := json.Unmarshal([]byte(cj), &q.Choices); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %q: %w", id, ErrNotFound)
	}
	return nil
}
