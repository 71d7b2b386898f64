package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lamina/internal/config"
	"lamina/internal/gallery"
	"lamina/internal/imagegen"
	"lamina/internal/logging"
	"lamina/internal/publish"
	"lamina/internal/workflow"

	"go.uber.org/zap"
)

// app bundles what every command needs: config, logging and the gallery.
type app struct {
	cfg     *config.Config
	backend *gallery.SQLiteBackend
	store   *gallery.Store
}

// newService builds the remote image service. Tests replace it.
var newService = newGeminiService

// openApp loads config, initializes logging and opens the gallery database.
// needKey makes a missing Gemini credential fatal.
func openApp(needKey bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		if needKey || !errors.Is(err, config.ErrMissingCredential) {
			return nil, err
		}
	}

	if err := logging.Initialize(cfg.DataDir(), logging.Options{
		DebugMode:  cfg.Logging.DebugMode || verbose,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, err
	}

	backend, err := gallery.OpenSQLite(cfg.Storage.Driver, cfg.Storage.DatabasePath)
	if err != nil {
		logging.CloseAll()
		return nil, err
	}

	logging.Boot("Opened gallery %s (driver=%s key=%s)", backend.Path(), cfg.Storage.Driver, cfg.Storage.Key)
	if logger != nil {
		logger.Debug("Gallery opened",
			zap.String("path", backend.Path()),
			zap.String("driver", cfg.Storage.Driver))
	}

	return &app{
		cfg:     cfg,
		backend: backend,
		store:   gallery.New(backend, cfg.Storage.Key),
	}, nil
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

func newGeminiService(ctx context.Context, cfg *config.Config) (workflow.ImageService, error) {
	return imagegen.New(ctx, imagegen.Options{
		APIKey:     cfg.Gemini.APIKey,
		ImageModel: cfg.Gemini.ImageModel,
		EditModel:  cfg.Gemini.EditModel,
		TextModel:  cfg.Gemini.TextModel,
		BaseURL:    cfg.Gemini.BaseURL,
	})
}

// newOrchestrator builds a workflow over the shared gallery and loads it.
func (a *app) newOrchestrator(ctx context.Context) (*workflow.Orchestrator, error) {
	svc, err := newService(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	orch := workflow.New(svc, a.store)
	orch.Load(ctx)
	return orch, nil
}

func (a *app) newPublisher() (*publish.Publisher, error) {
	if !a.cfg.PublishEnabled() {
		return nil, fmt.Errorf("publishing is not configured (set publish.endpoint and publish.bucket)")
	}
	return publish.New(publish.Options{
		Endpoint:  a.cfg.Publish.Endpoint,
		Bucket:    a.cfg.Publish.Bucket,
		AccessKey: a.cfg.Publish.AccessKey,
		SecretKey: a.cfg.Publish.SecretKey,
		UseSSL:    a.cfg.Publish.UseSSL,
		Prefix:    a.cfg.Publish.Prefix,
		Region:    a.cfg.Publish.Region,
	})
}

// timeout is the --timeout flag when set, else the configured one.
func (a *app) timeout() time.Duration {
	if timeout > 0 {
		return timeout
	}
	return a.cfg.GetGeminiTimeout()
}

// Close releases the database and log files.
func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to close gallery: %v", err)
	}
	logging.CloseAll()
}
