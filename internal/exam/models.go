package exam

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeShortAnswer    QuestionType = "short-answer"
)

// Question is one imported question. For multiple-choice questions
// CorrectAnswer equals one of Choices when answer resolution succeeded and
// is empty otherwise; an empty key is a data-quality signal, not an error.
type Question struct {
	ID            string       `json:"id,omitempty"`
	ExamID        string       `json:"exam_id,omitempty"`
	Prompt        string       `json:"prompt"`
	Type          QuestionType `json:"type"`
	Choices       []string     `json:"choices,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	ImageURL      string       `json:"image_url,omitempty"`
	CreatedAt     int64        `json:"created_at,omitempty"`
}

type Exam struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at,omitempty"`
}
