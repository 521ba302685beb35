// Package app initializes and holds long-lived application services.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/clock"
	"github.com/JakeFAU/email-extractor/internal/config"
	collyfetcher "github.com/JakeFAU/email-extractor/internal/fetcher/colly"
	"github.com/JakeFAU/email-extractor/internal/harvest"
	"github.com/JakeFAU/email-extractor/internal/id/uuid"
	"github.com/JakeFAU/email-extractor/internal/logging"
	"github.com/JakeFAU/email-extractor/internal/storage/local"
	"github.com/JakeFAU/email-extractor/internal/storage/memory"
)

// App holds the shared services built once at startup.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	service *harvest.Service
}

// New builds the logger, fetcher, engine and run store described by cfg.
func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:    cfg.HTTP.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	}, logger.Named("fetcher"))
	return NewWithFetcher(cfg, logger, fetcher), nil
}

// NewWithFetcher wires an App around an existing logger and fetcher.
func NewWithFetcher(cfg config.Config, logger *zap.Logger, fetcher harvest.Fetcher) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := harvest.NewEngine(fetcher, logger.Named("engine"))
	service := harvest.NewService(
		engine,
		memory.NewRunStore(cfg.Server.MaxStoredRuns),
		uuid.New(),
		clock.NewSystem(),
	)
	return &App{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetConfig returns the loaded configuration.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetService returns the extraction service.
func (a *App) GetService() *harvest.Service {
	return a.service
}

// ExportStore opens the directory CSV exports are written to. An empty dir falls back to
// export.output_dir.
func (a *App) ExportStore(dir string) (harvest.BlobStore, error) {
	if dir == "" {
		dir = a.cfg.Export.OutputDir
	}
	if dir == "" {
		return nil, fmt.Errorf("no export directory configured")
	}
	store, err := local.New(local.Config{BaseDir: dir})
	if err != nil {
		return nil, fmt.Errorf("open export directory: %w", err)
	}
	return store, nil
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.logger.Sync()
}
