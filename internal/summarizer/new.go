package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

// generateFunc sends prompt to model using apiKey and returns the response text
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implSummarizer struct {
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   generateFunc
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys:  apiKeys,
		logger:   log,
		model:    model,
		generate: generateGemini,
	}
}
