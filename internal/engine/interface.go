package engine

import (
	"context"

	"github.com/nguyentantai21042004/video-transcriber/internal/transcript"
)

// Engine turns one media file into an ordered list of timed segments.
// Implementations must return segments in chronological order.
type Engine interface {
	Transcribe(ctx context.Context, mediaPath string) (transcript.Transcript, error)
}
