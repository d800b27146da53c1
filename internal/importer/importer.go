package importer

import (
	"context"
	"errors"
	"mime"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ksandoe/passport-import/internal/archive"
	"github.com/ksandoe/passport-import/internal/exam"
	"github.com/ksandoe/passport-import/internal/media"
	"github.com/ksandoe/passport-import/internal/qti"
)

// Fatal pipeline errors. Everything else is absorbed into Result.Errors.
var (
	ErrNoDocuments = errors.New("no assessment documents found in archive")
	ErrNoQuestions = errors.New("no questions could be extracted from archive")
)

// Result is the single value an import run surfaces to its caller.
// Imported counts successful submissions; Errors holds one message per
// failed question, in submission order.
type Result struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type Stage string

const (
	StageReadingArchive Stage = "reading_archive"
	StageUploadingMedia Stage = "uploading_media"
	StageParsing        Stage = "parsing"
	StageSubmitting     Stage = "submitting"
)

type MediaUploader interface {
	UploadAll(ctx context.Context, examID string, assets []media.Asset) media.Map
}

type QuestionSubmitter interface {
	Submit(ctx context.Context, examID string, q exam.Question) error
}

// Pipeline sequences one import run: read archive, upload media, parse
// documents, submit questions. A Pipeline is stateless across runs and
// safe for concurrent use; each run owns its own media map.
type Pipeline struct {
	uploader  MediaUploader
	submitter QuestionSubmitter
	log       *zap.Logger
}

func New(uploader MediaUploader, submitter QuestionSubmitter, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{uploader: uploader, submitter: submitter, log: log}
}

// Run imports one exam package. Fatal errors (unreadable archive, no XML
// documents, zero extracted questions) abort the run; per-asset and
// per-question failures degrade locally and end up in the result.
// Cancellation is honored between stages, never mid-stage, so the media
// map is never left half-built.
func (p *Pipeline) Run(ctx context.Context, examID string, pkg []byte) (Result, error) {
	log := p.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("exam_id", examID),
	)

	log.Info("import started", zap.String("stage", string(StageReadingArchive)))
	entries, err := archive.Open(pkg)
	if err != nil {
		return Result{}, err
	}

	var docs []archive.Entry
	var assets []media.Asset
	for _, e := range entries {
		switch e.Kind {
		case archive.KindXML:
			docs = append(docs, e)
		case archive.KindMedia:
			assets = append(assets, media.Asset{
				ArchiveName: e.Name,
				ContentType: mime.TypeByExtension(path.Ext(e.Name)),
				Bytes:       e.Bytes,
			})
		}
	}
	if len(docs) == 0 {
		return Result{}, ErrNoDocuments
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Info("uploading media",
		zap.String("stage", string(StageUploadingMedia)),
		zap.Int("assets", len(assets)))
	mediaURLs := p.uploader.UploadAll(ctx, examID, assets)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Info("parsing documents",
		zap.String("stage", string(StageParsing)),
		zap.Int("documents", len(docs)))
	var questions []exam.Question
	for _, d := range docs {
		qs, err := qti.Parse(d.Bytes, mediaURLs)
		if err != nil {
			log.Warn("skipping unparseable document",
				zap.String("entry", d.Name), zap.Error(err))
			continue
		}
		questions = append(questions, qs...)
	}
	if len(questions) == 0 {
		return Result{}, ErrNoQuestions
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Info("submitting questions",
		zap.String("stage", string(StageSubmitting)),
		zap.Int("questions", len(questions)))
	var res Result
	for _, q := range questions {
		if err := p.submitter.Submit(ctx, examID, q); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Imported++
	}

	log.Info("import finished",
		zap.Int("imported", res.Imported),
		zap.Int("failed", len(res.Errors)))
	return res, nil
}
