package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	httpadapter "github.com/adityarajsrv/CareerQuill/internal/adapter/http"
	repo "github.com/adityarajsrv/CareerQuill/internal/adapter/repository"
	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/builder"
	"github.com/adityarajsrv/CareerQuill/internal/config"
	"github.com/adityarajsrv/CareerQuill/internal/export"
	"github.com/adityarajsrv/CareerQuill/internal/infrastructure/migration"
	"github.com/adityarajsrv/CareerQuill/internal/render"
	"github.com/adityarajsrv/CareerQuill/internal/skills"
	"github.com/adityarajsrv/CareerQuill/internal/usecase"
	"github.com/adityarajsrv/CareerQuill/pkg/ats"
	infra "github.com/adityarajsrv/CareerQuill/pkg/infrastructure"
	"github.com/adityarajsrv/CareerQuill/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn("database not available, drafts and accounts are disabled", "error", err)
	}
	if pool != nil {
		defer pool.Close()
	}
	if err := migration.RunMigrations(ctx, pool); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	taxonomy := skills.Default()
	if cfg.SkillsTaxonomyFile != "" {
		taxonomy, err = loadTaxonomy(cfg.SkillsTaxonomyFile)
		if err != nil {
			log.Error("invalid skills taxonomy", "file", cfg.SkillsTaxonomyFile, "error", err)
			os.Exit(1)
		}
	}

	html, err := render.NewHTMLRenderer()
	if err != nil {
		log.Error("failed to parse page template", "error", err)
		os.Exit(1)
	}

	exporter := export.New(infra.NewChromeLauncher(cfg.ChromePath),
		export.WithTimeout(cfg.ExportTimeout),
		export.WithLogger(log))

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
	}

	generator := usecase.NewGenerator(render.DefaultRegistry(), html, exporter, repo.NewDraftsRepo(pool),
		usecase.WithBuildOptions(builder.WithCategorizer(skills.NewCategorizer(taxonomy))),
		usecase.WithPrintBaseURL(cfg.PrintBaseURL),
		usecase.WithLinkSigner(auth.NewTokens(secret+":print", 5*time.Minute)),
		usecase.WithLogger(log))

	authSvc := auth.NewService(repo.NewUsersRepo(pool), auth.NewTokens(secret, auth.DefaultTokenTTL))

	atsClient := ats.NewClient(cfg.ATSServiceURL)
	atsClient.Log = log

	app := httpadapter.NewApp(httpadapter.RouterDeps{
		Generator: generator,
		Auth:      authSvc,
		Cookies:   auth.Cookies{Name: cfg.CookieName, Secure: cfg.Production()},
		ATS:       atsClient,
		ClientURL: cfg.ClientURL,
		Log:       log,
	})

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func loadTaxonomy(path string) (*skills.Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return skills.LoadTaxonomy(f)
}
