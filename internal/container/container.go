package container

import (
	"context"
	"fmt"

	"hypokit/adapters/excel"
	"hypokit/app"
	"hypokit/internal"
	"hypokit/internal/api"
	"hypokit/internal/config"
	"hypokit/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Data access
	Reader ports.DatasetReader

	// Services
	Analysis *app.AnalysisService

	// Transport
	API *api.App
}

// ExcelReaderFactory opens .xlsx, .csv and .tsv files
func ExcelReaderFactory(path string) ports.DatasetReader {
	return excel.NewDataReader(path)
}

// New creates a new dependency injection container. Without a data file
// the dataset endpoints report 404 and only stateless routines are served.
func New(cfg *config.Config) (*Container, error) {
	return NewWithReaderFactory(cfg, ExcelReaderFactory)
}

// NewWithReaderFactory is New with a custom way of opening the data file
func NewWithReaderFactory(cfg *config.Config, open ports.DatasetReaderFactory) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	internal.DefaultLogger.SetLevel(cfg.Logging.Level)
	c := &Container{
		Config: cfg,
		Logger: internal.DefaultLogger.With("Container"),
	}

	if cfg.Data.File != "" {
		c.Reader = open(cfg.Data.File)
		c.Analysis = app.NewAnalysisService(c.Reader, cfg.Analysis)
	}
	c.API = api.NewApp(c.Analysis)

	c.Logger.Info("Container initialized (data file: %q)", cfg.Data.File)
	return c, nil
}

// Warm loads the data file up front so configuration errors surface at startup
func (c *Container) Warm(ctx context.Context) error {
	if c.Analysis == nil {
		return nil
	}
	_, err := c.Analysis.Reload(ctx)
	return err
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info("Shutting down")
	return nil
}
