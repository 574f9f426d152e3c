package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdfshrink/internal/common"
)

// Config holds application configuration
type Config struct {
	WorkingDir   string
	DatabasePath string
	AppDataDir   string
	Logger       *slog.Logger
	PDF          *model.Configuration
}

// New creates a new configuration instance
func New(logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	cfg := &Config{
		Logger: logger,
		PDF:    newPDFConfiguration(),
	}

	cfg.setupDirectories()

	return cfg
}

func (c *Config) setupDirectories() {
	c.WorkingDir = filepath.Join(os.TempDir(), "pdfshrink")
	os.MkdirAll(c.WorkingDir, common.DefaultFilePermissions)

	c.AppDataDir = getAppDataDir()
	os.MkdirAll(c.AppDataDir, common.DefaultFilePermissions)

	c.DatabasePath = filepath.Join(c.AppDataDir, "history.sqlite3")
}

// newPDFConfiguration returns the pdfcpu configuration used for every
// parse and write. Relaxed validation lets damaged but recoverable
// documents load; object and xref streams keep the output compact.
func newPDFConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	return conf
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pdfshrink")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".pdfshrink")
}
