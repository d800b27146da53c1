package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ksandoe/passport-import/internal/exam"
	"github.com/ksandoe/passport-import/internal/importer"
	"github.com/ksandoe/passport-import/internal/media"
)

type stubUploader struct{}

func (stubUploader) UploadAll(_ context.Context, _ string, assets []media.Asset) media.Map {
	m := media.Map{}
	for _, a := range assets {
		m[a.ArchiveName] = "https://cdn.example.com/" + a.ArchiveName
	}
	return m
}

type stubSubmitter struct{ errs []error }

func (s *stubSubmitter) Submit(_ context.Context, _ string, _ exam.Question) error {
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func importRequest(t *testing.T, pkg []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "package.zip")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(pkg); err != nil {
		t.Fatal(err)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/exams/exam-1/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write(content)
	_ = zw.Close()
	return buf.Bytes()
}

const oneItemDoc = `<questestinterop><assessment><section>
	<item ident="q1">
	  <presentation><material><mattext>A question</mattext></material></presentation>
	</item>
</section></assessment></questestinterop>`

func importRouter(sub *stubSubmitter) *chi.Mux {
	pipe := importer.New(stubUploader{}, sub, nil)
	r := chi.NewRouter()
	r.Post("/exams/{examID}/import", ImportHandler(pipe, zap.NewNop()))
	return r
}

func TestImportHandlerSuccess(t *testing.T) {
	r := importRouter(&stubSubmitter{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, zipWith(t, "quiz.xml", []byte(oneItemDoc))))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res importer.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Imported != 1 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestImportHandlerPartialFailureIs200(t *testing.T) {
	r := importRouter(&stubSubmitter{errs: []error{errors.New("duplicate")}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, zipWith(t, "quiz.xml", []byte(oneItemDoc))))

	if w.Code != http.StatusOK {
		t.Fatalf("a run with item failures is still a completed run; status = %d", w.Code)
	}
	var res importer.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Imported != 0 || len(res.Errors) != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestImportHandlerBadArchive(t *testing.T) {
	r := importRouter(&stubSubmitter{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, []byte("not a zip")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Error == "" {
		t.Fatalf("expected structured error, got %s", w.Body.String())
	}
}

func TestImportHandlerNoXML(t *testing.T) {
	r := importRouter(&stubSubmitter{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, zipWith(t, "only.png", []byte{1})))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestImportHandlerMissingFile(t *testing.T) {
	r := importRouter(&stubSubmitter{})
	req := httptest.NewRequest(http.MethodPost, "/exams/exam-1/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
