package batch

import (
	"sync"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/engine"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

type implDriver struct {
	cfg    *config.Config
	engine engine.Engine
	logger logger.Logger

	mu      sync.Mutex
	claimed map[fileKey]bool
}

// New creates a Driver that transcribes with eng.
// cfg must already be validated.
func New(cfg *config.Config, eng engine.Engine, log logger.Logger) Driver {
	return &implDriver{
		cfg:     cfg,
		engine:  eng,
		logger:  log,
		claimed: make(map[fileKey]bool),
	}
}
