package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ksandoe/passport-import/internal/exam"
)

// POST /question -> stored question, or {"error": ...}
func CreateQuestionHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q exam.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if q.ExamID == "" {
			writeError(w, http.StatusBadRequest, "exam_id required")
			return
		}
		if q.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt required")
			return
		}
		switch q.Type {
		case exam.TypeMultipleChoice:
			if len(q.Choices) == 0 {
				writeError(w, http.StatusBadRequest, "choices required for multiple-choice")
				return
			}
		case exam.TypeShortAnswer:
		default:
			writeError(w, http.StatusBadRequest, "unsupported question type")
			return
		}

		saved, err := store.PutQuestion(r.Context(), q)
		if err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			log.Error("put question failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

// GET /exams/{examID}/questions
func ListQuestionsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		qs, err := store.ListQuestions(r.Context(), examID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if qs == nil {
			qs = []exam.Question{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// DELETE /question/{id}
func DeleteQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.DeleteQuestion(r.Context(), id); err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /exams {"id": ..., "title": ...}
func CreateExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e exam.Exam
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if e.ID == "" || e.Title == "" {
			writeError(w, http.StatusBadRequest, "id and title required")
			return
		}
		if err := store.PutExam(r.Context(), e); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}
