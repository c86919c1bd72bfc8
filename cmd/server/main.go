package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/ads"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logging"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logging.New(os.Stderr, "error", "text").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	renderer, err := infra.NewRenderer(cfg.Renderer, cfg.ChromePath, cfg.RenderTimeout)
	if err != nil {
		log.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}

	pool, err := infra.NewExportsPool(ctx, cfg.DatabaseURL)
	switch {
	case errors.Is(err, infra.ErrNoDSN):
		log.Info("export audit disabled: no database configured")
	case err != nil:
		log.Warn("export audit DB not available", "error", err)
	default:
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			log.Warn("export audit migrations failed", "error", err)
			pool.Close()
			pool = nil
		}
	}
	exportsRepo := repo.NewExportsRepo(pool)

	tpl, _ := model.ParseTemplate(cfg.DefaultTemplate)
	policy := usecase.RenderPolicy{Attempts: cfg.RenderAttempts, Backoff: cfg.RenderBackoff}
	sessions := usecase.NewSessions(usecase.SessionConfig{
		TTL:             cfg.SessionTTL,
		DefaultTemplate: tpl,
		Renderer:        renderer,
		Repo:            exportsRepo,
		Policy:          policy,
	}, log)
	go sessions.Run(ctx, time.Minute)

	snippet, err := ads.Snippet(ads.Config{Enabled: cfg.Ads.Enabled, Client: cfg.Ads.Client, Slot: cfg.Ads.Slot})
	if err != nil {
		log.Warn("ads disabled", "error", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.MaxPhotoBytes) + 1<<20,
		DisableStartupMessage: true,
	})

	h := httpadapter.NewHandler(httpadapter.Options{
		Sessions:        sessions,
		Renderer:        renderer,
		Policy:          policy,
		Stats:           exportsRepo,
		Ads:             snippet,
		DefaultLanguage: cfg.DefaultLanguage,
		MaxPhotoBytes:   cfg.MaxPhotoBytes,
		Log:             log,
	})
	h.Register(app)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("listening", "addr", cfg.Addr, "renderer", renderer.Name())
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
