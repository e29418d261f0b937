// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, storage and handlers into the
// running HTTP service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/imagetext/internal/config"
	"codeberg.org/oliverandrich/imagetext/internal/database"
	"codeberg.org/oliverandrich/imagetext/internal/handlers"
	"codeberg.org/oliverandrich/imagetext/internal/i18n"
	"codeberg.org/oliverandrich/imagetext/internal/middleware"
	"codeberg.org/oliverandrich/imagetext/internal/repository"
	"codeberg.org/oliverandrich/imagetext/internal/services/auth"
	"codeberg.org/oliverandrich/imagetext/internal/services/ocr"
	"codeberg.org/oliverandrich/imagetext/internal/services/token"
	"codeberg.org/oliverandrich/imagetext/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.NewFromCLI(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Repository and services
	repo := repository.New(db)
	authService := auth.NewService(repo, &cfg.Auth)
	tokens := token.NewManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)
	engine := ocr.NewTesseract(cfg.OCR.Languages...)

	var archiver *storage.Archiver
	if cfg.OCR.SaveUploads {
		archiver = storage.NewArchiver(cfg.OCR.UploadDir)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, cfg, repo, authService, tokens, engine, archiver)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	repo *repository.Repository,
	authService *auth.Service,
	tokens *token.Manager,
	engine ocr.Engine,
	archiver *storage.Archiver,
) {
	h := handlers.New()
	authHandlers := handlers.NewAuth(authService, tokens, cfg.Server.BaseURL)
	extractHandlers := handlers.NewExtract(engine, archiver)

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/auth/signup", authHandlers.Signup)
	api.POST("/auth/login", authHandlers.Login)
	api.POST("/image-to-text", extractHandlers.ImageToText, middleware.RequireToken(tokens, repo))
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
