package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/automaton-seo/internal/application"
	appaudit "github.com/bryanwahyu/automaton-seo/internal/application/audit"
	"github.com/bryanwahyu/automaton-seo/internal/config"
	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
	aiclient "github.com/bryanwahyu/automaton-seo/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/automaton-seo/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/automaton-seo/internal/infra/db/postgres"
	"github.com/bryanwahyu/automaton-seo/internal/infra/export"
	"github.com/bryanwahyu/automaton-seo/internal/infra/gsc"
	"github.com/bryanwahyu/automaton-seo/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/automaton-seo/internal/infra/storage"
	"github.com/bryanwahyu/automaton-seo/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// optional audit history, driver per config
	var repo domain.Repository
	var db *sql.DB
	checkers := map[string]middleware.HealthChecker{}
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAuditRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAuditRepository(db)
	case "":
		log.Println("no database configured, audit history disabled")
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	if db != nil {
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// optional artifact retention
	var artifacts domain.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = store
	}

	// init service
	svc := &appaudit.Service{
		Fetchers:  gsc.NewFactory(),
		AI:        aiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		Exporter:  export.New(),
		Repo:      repo,
		Artifacts: artifacts,
		Clock:     application.SystemClock{},
		SiteURL:   cfg.Site.URL,
		Dates:     domain.DateRange{Start: cfg.Site.StartDate, End: cfg.Site.EndDate},
		RowLimit:  cfg.Site.RowLimit,
		WorkDir:   cfg.WorkDir,
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, httpserver.Options{
		APIKeys:        cfg.Auth.APIKeys,
		RateCapacity:   cfg.RateLimit.Capacity,
		RateRefill:     cfg.RateLimit.RefillRate,
		HealthCheckers: checkers,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // the audit pipeline is synchronous
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
