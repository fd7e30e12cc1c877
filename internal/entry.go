// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/pipeline"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/watch"
)

// Run executes the ingestion pipeline with the given options: one batch
// build, or a long-lived watch loop when watch mode is enabled.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("content_path", cfg.Content.Path),
		slog.String("corpus_path", cfg.Output.CorpusPath),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("watch", app.watchMode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize content storage.
	store, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Initialize SQLite search cache.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	pipe := pipeline.New(store, pipeline.Config{
		Sentinel:     cfg.Content.Sentinel,
		RelatedCount: cfg.Pipeline.RelatedCount,
		Workers:      cfg.Pipeline.Workers,
	}, logger)

	builder := &builder{cfg: cfg, pipe: pipe, db: db, logger: logger}

	if !app.watchMode {
		return builder.build(ctx)
	}

	// Watch mode: rebuild on content changes until interrupted. A failed
	// rebuild (for example an empty corpus mid-edit) is logged and the
	// watcher keeps going; the previous outputs stay in place.
	if err := builder.build(ctx); err != nil {
		logger.Error("initial build failed", slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watch.Watch(gctx, store.Root(), watch.DefaultDebounce, logger, func(ctx context.Context) {
			if err := builder.build(ctx); err != nil {
				logger.Error("rebuild failed", slog.String("error", err.Error()))
			}
		})
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped")
	return nil
}

// builder runs one pipeline pass and persists its outputs.
type builder struct {
	cfg    *Config
	pipe   *pipeline.Pipeline
	db     *index.DB
	logger *slog.Logger

	lastChecksum string
}

func (b *builder) build(ctx context.Context) error {
	c, report, err := b.pipe.Run(ctx)
	if report != nil {
		if werr := writeJSONAtomic(b.cfg.Output.TriagePath, report); werr != nil {
			b.logger.Error("write triage report failed", slog.String("error", werr.Error()))
		}
	}
	if err != nil {
		return err
	}

	sum, err := c.Checksum()
	if err != nil {
		return err
	}
	if sum == b.lastChecksum {
		b.logger.Info("corpus unchanged, outputs left in place", slog.String("checksum", sum))
		return nil
	}

	snap := c.Snapshot()
	if err := writeJSONAtomic(b.cfg.Output.CorpusPath, snap); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := b.db.Rebuild(snap); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	b.lastChecksum = sum

	b.logger.Info("build complete",
		slog.Int("posts", c.Len()),
		slog.Int("tags", len(c.Tags())),
		slog.String("checksum", sum))
	return nil
}

// writeJSONAtomic marshals v and writes it tmp -> fsync -> rename so a
// crashed build never leaves a torn output file.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".raido-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
