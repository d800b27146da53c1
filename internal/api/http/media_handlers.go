package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ksandoe/passport-import/internal/storage"
)

const maxUploadBytes = 32 << 20

// POST /upload-image (multipart: file, exam_id) -> {"url": ...}
func UploadImageHandler(bs storage.BlobStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "multipart form required")
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()

		examID := r.FormValue("exam_id")
		if examID == "" {
			writeError(w, http.StatusBadRequest, "exam_id required")
			return
		}

		ct := hdr.Header.Get("Content-Type")
		if ct == "" {
			ct = mime.TypeByExtension(path.Ext(hdr.Filename))
		}

		key := "exams/" + examID + "/media/" + path.Base(hdr.Filename)
		if _, err := bs.Put(r.Context(), key, f, ct); err != nil {
			log.Error("blob put failed", zap.String("key", key), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		url, err := bs.URL(r.Context(), key)
		if err != nil {
			log.Error("blob url failed", zap.String("key", key), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

// GET /assets/* -> returns the blob at whatever follows /assets/
func ServeAssetHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, ct, err := bs.Get(r.Context(), key)
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	}
}
