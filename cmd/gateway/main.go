package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	api "github.com/ksandoe/passport-import/internal/api/http"
	"github.com/ksandoe/passport-import/internal/auth"
	"github.com/ksandoe/passport-import/internal/config"
	"github.com/ksandoe/passport-import/internal/db"
	"github.com/ksandoe/passport-import/internal/exam"
	"github.com/ksandoe/passport-import/internal/importer"
	"github.com/ksandoe/passport-import/internal/logging"
	"github.com/ksandoe/passport-import/internal/media"
	"github.com/ksandoe/passport-import/internal/rbac"
	"github.com/ksandoe/passport-import/internal/storage"
	"github.com/ksandoe/passport-import/internal/submit"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logging.New(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	store := exam.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob storage ---
	bs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatal("blob store", zap.Error(err))
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	creds := []auth.Credential{
		{Username: cfg.AdminUser, PassHash: cfg.AdminPassHash, Role: "admin"},
	}

	// --- Import pipeline ---
	// The pipeline talks to the same endpoints the web client does, so it
	// exercises exactly the contract external importers see.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	uploader := media.NewUploader(cfg.APIBaseURL, httpClient, cfg.UploadConcurrency, log)
	submitter := submit.NewSubmitter(cfg.APIBaseURL, httpClient)
	pipe := importer.New(uploader, submitter, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, creds))

	// Open endpoints the import pipeline and the web client call directly.
	r.Post("/upload-image", api.UploadImageHandler(bs, log))
	r.Get("/assets/*", api.ServeAssetHandler(bs))
	r.Post("/question", api.CreateQuestionHandler(store, log))
	r.Get("/exams/{examID}/questions", api.ListQuestionsHandler(store))

	// Protected management surface (JWT -> role in context -> RBAC).
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("exam:create")).
			Post("/exams", api.CreateExamHandler(store))
		pr.With(rbac.Require("question:delete")).
			Delete("/question/{id}", api.DeleteQuestionHandler(store))
		pr.With(rbac.Require("exam:import")).
			Post("/exams/{examID}/import", api.ImportHandler(pipe, log))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db", cfg.DBDriver),
		zap.String("blob", cfg.BlobDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newBlobStore(cfg config.Config) (storage.BlobStore, error) {
	if cfg.BlobDriver == "s3" {
		return storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	}
	return storage.NewFSStore(cfg.BlobBasePath, cfg.PublicURL)
}
