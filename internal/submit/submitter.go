package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ksandoe/passport-import/internal/exam"
)

// Submitter posts imported questions to the backend question endpoint,
// one request per question. Failures are independent across questions.
type Submitter struct {
	client  *http.Client
	baseURL string
}

func NewSubmitter(baseURL string, client *http.Client) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submitter{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Submit posts q for examID. On a non-success response the returned error
// message is the structured error field from the body when present, else a
// generic default; the message is what lands in the import error list.
func (s *Submitter) Submit(ctx context.Context, examID string, q exam.Question) error {
	q.ExamID = examID
	payload, err := json.Marshal(q)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/question", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit question: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 == 2 {
		return nil
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return fmt.Errorf("question rejected with status %d", resp.StatusCode)
}
