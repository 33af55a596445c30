package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexispparra/roots-sub000/internal/ai"
	"github.com/alexispparra/roots-sub000/internal/attachments"
	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/config"
	"github.com/alexispparra/roots-sub000/internal/importer"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/logger"
	"github.com/alexispparra/roots-sub000/internal/server"
	"github.com/alexispparra/roots-sub000/internal/storage"
	"github.com/alexispparra/roots-sub000/internal/watch"
)

func main() {
	cfg := config.Load()

	logLevel := "info"
	if cfg.Server.GinMode == "debug" {
		logLevel = "debug"
	}
	logger.Initialize(logLevel)
	log := logger.Get()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	storageType, err := storage.ValidateStorageType(cfg.Storage.Type)
	if err != nil {
		log.Fatal("Invalid storage type", "type", cfg.Storage.Type, "error", err)
	}

	repos, err := storage.NewFactory(storageType).CreateContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer repos.Close()

	hub := watch.NewHub(repos.Projects())
	ledgerService := ledger.NewService(repos.Projects(), hub, cfg.Auth.BootstrapAdmin)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(repos.Users(), tokens)

	deps := server.Dependencies{
		Repos:  repos,
		Ledger: ledgerService,
		Hub:    hub,
		Auth:   authService,
		Tokens: tokens,
	}

	ctx := context.Background()

	if cfg.Minio.AccessKey != "" {
		receipts, err := attachments.NewStore(ctx, cfg.Minio)
		if err != nil {
			log.Fatal("Failed to initialize receipt storage", "error", err)
		}
		deps.Receipts = receipts
	} else {
		log.Warn("MINIO_ACCESS_KEY not set, receipt upload disabled")
	}

	if cfg.Gemini.APIKey != "" {
		aiClient, err := ai.NewClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Fatal("Failed to initialize Gemini client", "error", err)
		}
		deps.AI = aiClient
	} else {
		log.Warn("GEMINI_API_KEY not set, task prioritization disabled")
	}

	if cfg.Import.SheetBaseURL != "" {
		deps.Importer = importer.New(ledgerService, cfg.Import.SheetBaseURL, cfg.Import.Timeout)
	} else {
		log.Warn("IMPORT_SHEET_BASE_URL not set, spreadsheet import disabled")
	}

	srv := server.New(cfg, deps)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}
	log.Info("Server stopped")
}
