package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eniac-club/regdesk/internal/config"
	"github.com/eniac-club/regdesk/internal/drive"
	"github.com/eniac-club/regdesk/internal/handler"
	"github.com/eniac-club/regdesk/internal/logger"
	"github.com/eniac-club/regdesk/internal/router"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/eniac-club/regdesk/internal/store"
	"github.com/eniac-club/regdesk/internal/validator"
	"github.com/eniac-club/regdesk/internal/websocket"
	"github.com/eniac-club/regdesk/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StorePath).
		Msg("Starting regdesk")

	if !cfg.UploadConfigured() {
		log.Warn().Msg("Drive upload not configured; submissions will save locally but not sync")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Store ──────────────────────────────────────────────
	file := store.NewFile(cfg.StorePath)
	repo := store.NewRegistrationRepository(file, cfg.StorageKey, log)

	// ─── Initialize Services ──────────────────────────────────────────
	hub := websocket.NewHub(log)
	uploader := drive.NewClient(cfg.AppsScriptURL, cfg.DriveFolderID, log)
	authService := service.NewAuthService(cfg, service.VerifierFromConfig(cfg))
	registrationService := service.NewRegistrationService(repo, uploader, hub, cfg.CSVFilename, log)
	adminService := service.NewAdminService(repo, hub, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Registration: handler.NewRegistrationHandler(registrationService, log),
		Admin:        handler.NewAdminHandler(authService, adminService, log),
		Monitor:      handler.NewMonitorHandler(hub, adminService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	backupWorker := worker.NewBackupWorker(repo, cfg.BackupDir, cfg.BackupInterval, log)
	go backupWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the backup worker; it writes a final snapshot on the way out.
	workerCancel()
	time.Sleep(time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
