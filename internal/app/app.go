// Package app provides the application container and dependency injection.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sanixdarker/gqlg/internal/cache"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/internal/loader"
	"github.com/sanixdarker/gqlg/internal/storage"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// App is the main application container.
type App struct {
	Config  *Config
	DB      *sql.DB
	Logger  *log.Logger
	Loaders *loader.Manager
	History *history.Service
	Results *cache.ResultCache
}

// New creates a new application instance. The database is only opened
// when cfg.DBPath is set; History is nil otherwise.
func New(cfg *Config) (*App, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "gqlg",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Loaders: loader.NewManager(),
		Results: cache.NewResultCache(cfg.CacheTTL),
	}

	if cfg.DBPath != "" {
		db, err := storage.Open(context.Background(), cfg.DBPath)
		if err != nil {
			a.Results.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		a.History = history.NewService(history.NewRepository(db))
		logger.Debug("database ready", "path", cfg.DBPath)
	}

	return a, nil
}

// GenerateOptions controls one generation pass.
type GenerateOptions struct {
	// Format is a loader format; it is detected from SourcePath and content when empty.
	Format     string
	SourcePath string
	// DepthLimit below zero selects the configured depth limit.
	DepthLimit int
}

// Generate loads a schema and generates every root field document.
func (a *App) Generate(content []byte, opts GenerateOptions) (*querygen.Result, error) {
	depth := opts.DepthLimit
	if depth < 0 {
		depth = a.Config.DepthLimit
	}

	format := opts.Format
	if format == "" {
		format = a.Loaders.DetectFormat(opts.SourcePath, content)
	}

	schema, err := a.Loaders.Load(format, content, &loader.Options{SourcePath: opts.SourcePath})
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	a.Logger.Debug("schema loaded", "format", format, "types", len(schema.Types))

	gen := querygen.New(schema,
		querygen.WithDepthLimit(depth),
		querygen.WithMaxOutput(a.Config.MaxOutput),
	)
	res, err := gen.GenerateAll()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents: %w", err)
	}
	return res, nil
}

// Close cleans up application resources.
func (a *App) Close() error {
	if a.Results != nil {
		a.Results.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
