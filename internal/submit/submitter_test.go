package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksandoe/passport-import/internal/exam"
)

func TestSubmitSuccess(t *testing.T) {
	var got exam.Question
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/question", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL, srv.Client())
	q := exam.Question{
		Prompt:        "Capital of England?",
		Type:          exam.TypeMultipleChoice,
		Choices:       []string{"Paris", "London"},
		CorrectAnswer: "London",
	}
	require.NoError(t, s.Submit(context.Background(), "exam-1", q))
	assert.Equal(t, "exam-1", got.ExamID)
	assert.Equal(t, "London", got.CorrectAnswer)
}

func TestSubmitStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "duplicate"})
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL, srv.Client())
	err := s.Submit(context.Background(), "exam-1", exam.Question{Prompt: "p", Type: exam.TypeShortAnswer})
	require.Error(t, err)
	// the structured message is surfaced verbatim in the import error list
	assert.Equal(t, "duplicate", err.Error())
}

func TestSubmitGenericErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL, srv.Client())
	err := s.Submit(context.Background(), "exam-1", exam.Question{Prompt: "p", Type: exam.TypeShortAnswer})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSubmitNetworkFailure(t *testing.T) {
	s := NewSubmitter("http://127.0.0.1:1", nil)
	err := s.Submit(context.Background(), "exam-1", exam.Question{Prompt: "p", Type: exam.TypeShortAnswer})
	require.Error(t, err)
}
