package engine

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
	"github.com/nguyentantai21042004/video-transcriber/pkg/executor"
)

// Load initialises the engine selected by cfg.Whisper.Backend.
// It is the only place a model is loaded; the returned Engine is passed to
// whoever needs it. Failures are returned as *ModelLoadError.
func Load(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	switch cfg.Whisper.Backend {
	case config.BackendWhisperCPP, "":
		return loadWhisperCPP(ctx, cfg, exec, log)
	case config.BackendHTTP:
		return loadHTTP(ctx, cfg, &http.Client{Timeout: cfg.Whisper.Timeout}, log)
	default:
		return nil, &ModelLoadError{
			Backend: cfg.Whisper.Backend,
			Model:   cfg.Whisper.ModelPath,
			Err:     fmt.Errorf("unknown backend"),
		}
	}
}
