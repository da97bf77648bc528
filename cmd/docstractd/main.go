package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/docstract/docstract/internal/archive"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/export"
	"github.com/docstract/docstract/internal/extract"
	"github.com/docstract/docstract/internal/ocr"
	"github.com/docstract/docstract/internal/pipeline"
	"github.com/docstract/docstract/internal/repository"
	"github.com/docstract/docstract/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Collaborators are constructed once here and injected; a failure at this
	// point is fatal, unlike per-item extraction errors.
	engine := ocr.NewEngine(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	if err := engine.Probe(ctx); err != nil {
		logger.Error("ocr engine unavailable", "error", err)
		os.Exit(1)
	}

	store, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("document store open failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("document store close failed", "error", err)
		}
	}()
	if err := store.Ping(ctx); err != nil {
		logger.Error("document store unreachable", "error", err)
		os.Exit(1)
	}
	logger.Info("document store OK")

	registry := extract.NewRegistry(engine, extract.Config{ForceOCR: cfg.OCR.ForceOCR}, logger)
	pl := pipeline.New(registry, logger)
	expander := archive.NewExpander(logger)
	exporter := export.NewService(true, logger)

	svc := server.NewService(pl, expander, exporter, store, cfg.Server.MaxUploadBytes, logger)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
