package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

// Options configures a Watcher
type Options struct {
	InputDir      string
	Extensions    []string
	MaxConcurrent int
	// SettleDelay is how long to wait after CREATE before handling the file.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.InputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = defaultSettleDelay
	}

	return &implWatcher{
		inputDir:      opts.InputDir,
		extensions:    opts.Extensions,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: opts.MaxConcurrent,
		settleDelay:   opts.SettleDelay,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
