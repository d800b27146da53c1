package exam

import "context"

type Store interface {
	PutExam(ctx context.Context, e Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)

	PutQuestion(ctx context.Context, q Question) (Question, error)
	ListQuestions(ctx context.Context, examID string) ([]Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}
