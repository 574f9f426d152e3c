package container

import (
	"log/slog"

	"pdfshrink/internal/compression"
	"pdfshrink/internal/config"
	"pdfshrink/internal/database"
	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
	"pdfshrink/internal/services"
	"pdfshrink/internal/worker"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *database.Database
	logger *slog.Logger

	provider   *pdf.Provider
	compressor *compression.Compressor
	worker     *worker.Worker

	compressionService *services.CompressionService
	preferencesService *services.PreferencesService
	historyService     *services.HistoryService
}

// New creates a new dependency injection container
func New(cfg *config.Config) *Container {
	c := &Container{
		config: cfg,
		logger: cfg.Logger,
	}

	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		// History and preferences degrade to defaults; compression
		// itself does not need the database.
		c.logger.Warn("history database unavailable", "path", cfg.DatabasePath, "error", err)
	} else {
		c.db = db
	}

	c.initServices()
	return c
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() {
	c.provider = pdf.NewProvider(c.config.PDF, c.logger)
	c.compressor = compression.NewCompressor(c.provider, c.logger)
	c.worker = worker.New(c.compressor, c.logger)

	c.compressionService = services.NewCompressionService(c.worker, c.db, c.logger)
	c.preferencesService = services.NewPreferencesService(c.db)
	c.historyService = services.NewHistoryService(c.db)
}

// GetCompressionService returns the compression service
func (c *Container) GetCompressionService() *services.CompressionService {
	return c.compressionService
}

// GetPreferencesService returns the preferences service
func (c *Container) GetPreferencesService() *services.PreferencesService {
	return c.preferencesService
}

// GetHistoryService returns the history service
func (c *Container) GetHistoryService() *services.HistoryService {
	return c.historyService
}

// GetWorker returns the request worker
func (c *Container) GetWorker() *worker.Worker {
	return c.worker
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Compressor returns the core pipeline as a domain service.
func (c *Container) Compressor() domain.Service {
	return c.compressor
}
