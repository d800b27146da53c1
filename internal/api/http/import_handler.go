package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ksandoe/passport-import/internal/archive"
	"github.com/ksandoe/passport-import/internal/importer"
)

const maxPackageBytes = 256 << 20

// POST /exams/{examID}/import (multipart: file=package.zip)
// -> {"imported": n, "errors": [...]}
//
// A run that completed with per-question failures is a 200 with a non-empty
// error list; only a run that could not execute at all is an HTTP error.
func ImportHandler(pipe *importer.Pipeline, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if err := r.ParseMultipartForm(maxPackageBytes); err != nil {
			writeError(w, http.StatusBadRequest, "multipart form required")
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()

		pkg, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
			return
		}

		res, err := pipe.Run(r.Context(), examID, pkg)
		if err != nil {
			switch {
			case errors.Is(err, archive.ErrBadArchive),
				errors.Is(err, importer.ErrNoDocuments),
				errors.Is(err, importer.ErrNoQuestions):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				log.Error("import run failed", zap.String("exam_id", examID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		if res.Errors == nil {
			res.Errors = []string{}
		}
		writeJSON(w, http.StatusOK, res)
	}
}
