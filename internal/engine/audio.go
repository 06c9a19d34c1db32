package engine

import (
	"context"
	"fmt"
	"path/filepath"
)

// extractAudio converts the media file to 16kHz mono PCM WAV inside workDir,
// the input format whisper.cpp expects.
func (e *implWhisperCPP) extractAudio(ctx context.Context, mediaPath, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, "audio.wav")

	e.logger.Debug(ctx, "Extracting audio: %s -> %s", mediaPath, audioPath)

	args := []string{
		"-i", mediaPath,
		"-vn",          // No video
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.ffmpegBin, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}
