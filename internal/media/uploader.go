package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Asset is one media file extracted from an exam package.
type Asset struct {
	ArchiveName string
	ContentType string
	Bytes       []byte
}

// Map associates archive-relative media names with their uploaded URLs.
// A name maps to "" when its upload failed; the parser then degrades that
// question to "no image" instead of failing the import.
type Map map[string]string

const defaultConcurrency = 4

// Uploader pushes package media to the backend image endpoint.
type Uploader struct {
	client      *http.Client
	baseURL     string
	concurrency int
	log         *zap.Logger
}

func NewUploader(baseURL string, client *http.Client, concurrency int, log *zap.Logger) *Uploader {
	if client == nil {
		client = http.DefaultClient
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{
		client:      client,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		concurrency: concurrency,
		log:         log,
	}
}

// UploadAll uploads every asset with bounded parallelism and returns the
// complete name→URL map. It never fails: individual upload errors are
// logged and recorded as empty URLs. The returned map has exactly one
// entry per asset and is safe to read once UploadAll returns.
func (u *Uploader) UploadAll(ctx context.Context, examID string, assets []Asset) Map {
	out := make(Map, len(assets))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(u.concurrency)
	for _, a := range assets {
		a := a
		g.Go(func() error {
			url, err := u.upload(ctx, examID, a)
			if err != nil {
				u.log.Warn("media upload failed",
					zap.String("asset", a.ArchiveName), zap.Error(err))
				url = ""
			}
			mu.Lock()
			out[a.ArchiveName] = url
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (u *Uploader) upload(ctx context.Context, examID string, a Asset) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, a.ArchiveName))
	hdr.Set("Content-Type", contentTypeFor(a))
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(a.Bytes); err != nil {
		return "", err
	}
	if err := mw.WriteField("exam_id", examID); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload-image", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil && resp.StatusCode/100 == 2 {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		if body.Error != "" {
			return "", fmt.Errorf("upload %s: %s", a.ArchiveName, body.Error)
		}
		return "", fmt.Errorf("upload %s: status %d", a.ArchiveName, resp.StatusCode)
	}
	if body.URL == "" {
		return "", fmt.Errorf("upload %s: response carried no url", a.ArchiveName)
	}
	return body.URL, nil
}

func contentTypeFor(a Asset) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if ct := mime.TypeByExtension(path.Ext(a.ArchiveName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
