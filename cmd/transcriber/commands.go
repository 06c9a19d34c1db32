package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/video-transcriber/internal/batch"
	"github.com/nguyentantai21042004/video-transcriber/internal/engine"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
	"github.com/nguyentantai21042004/video-transcriber/internal/summarizer"
	"github.com/nguyentantai21042004/video-transcriber/internal/watcher"
	"github.com/nguyentantai21042004/video-transcriber/pkg/executor"
)

type RunCMD struct {
	Dir string `arg:"" optional:"" type:"existingdir" help:"Directory to scan (defaults to paths.input)"`
}

func (c *RunCMD) Run(app *application) error {
	drv, err := app.newDriver(c.Dir)
	if err != nil {
		return err
	}

	report, err := drv.Run(app.ctx)
	if err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(report.Failed), report.Found)
	}

	app.logger.Info(app.ctx, "All transcriptions completed.")
	return nil
}

type WatchCMD struct {
	Dir string `arg:"" optional:"" type:"existingdir" help:"Directory to watch (defaults to paths.input)"`
}

func (c *WatchCMD) Run(app *application) error {
	drv, err := app.newDriver(c.Dir)
	if err != nil {
		return err
	}

	opts := watcher.Options{
		InputDir:      app.cfg.Paths.Input,
		Extensions:    app.cfg.Batch.Extensions,
		MaxConcurrent: app.cfg.Batch.MaxConcurrent,
	}
	if err := runWatch(app.ctx, drv, opts, app.logger); err != nil {
		return err
	}

	app.logger.Info(app.ctx, "Transcriber stopped")
	return nil
}

// runWatch subscribes to the input directory before the initial batch scans
// it, so files dropped while the batch runs are still picked up. The driver
// skips a file version it has already handled. It returns nil once ctx is
// cancelled, or the batch error if the initial batch fails.
func runWatch(ctx context.Context, drv batch.Driver, opts watcher.Options, log logger.Logger) error {
	handler := func(ctx context.Context, path string) error {
		_, err := drv.ProcessFile(ctx, path)
		return err
	}

	w, err := watcher.New(opts, handler, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(watchCtx) }()

	// files already present are handled by a normal batch
	if _, err := drv.Run(watchCtx); err != nil {
		cancel()
		<-done
		return err
	}

	log.Info(ctx, "Watching %s, press Ctrl+C to stop", opts.InputDir)

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type SummarizeCMD struct {
	Dir  string `arg:"" optional:"" type:"existingdir" help:"Directory holding .txt transcripts (defaults to paths.output or paths.input)"`
	Keys string `env:"GEMINI_API_KEYS" help:"Comma separated Gemini API keys"`
}

func (c *SummarizeCMD) Run(app *application) error {
	keys := splitKeys(c.Keys)
	if len(keys) == 0 {
		return fmt.Errorf("no Gemini API keys: set GEMINI_API_KEYS or --keys")
	}

	dir := c.Dir
	if dir == "" {
		dir = app.cfg.Paths.Output
	}
	if dir == "" {
		dir = app.cfg.Paths.Input
	}

	s := summarizer.New(keys, app.cfg.Gemini.Model, app.logger)
	stats, err := s.SummarizeAll(app.ctx, dir, app.cfg.Paths.Summaries)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d transcripts could not be summarized", stats.Failed)
	}
	return nil
}

// newDriver loads the recognition engine and wires the batch driver.
// dir, when set, replaces paths.input.
func (app *application) newDriver(dir string) (batch.Driver, error) {
	if dir != "" {
		app.cfg.Paths.Input = dir
	}
	if app.cfg.Paths.Output != "" {
		if err := os.MkdirAll(app.cfg.Paths.Output, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	eng, err := engine.Load(app.ctx, app.cfg, executor.New(), app.logger)
	if err != nil {
		return nil, err
	}

	return batch.New(app.cfg, eng, app.logger), nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
