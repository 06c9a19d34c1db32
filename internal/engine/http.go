package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
	"github.com/nguyentantai21042004/video-transcriber/internal/transcript"
)

// implHTTP talks to a faster-whisper sidecar exposing /health and /transcribe.
type implHTTP struct {
	baseURL  string
	model    string
	language string
	client   *http.Client
	logger   logger.Logger
}

type httpTranscribeResponse struct {
	Language string               `json:"language"`
	Segments []transcript.Segment `json:"segments"`
}

func loadHTTP(ctx context.Context, cfg *config.Config, client *http.Client, log logger.Logger) (Engine, error) {
	e := &implHTTP{
		baseURL:  strings.TrimSuffix(cfg.Whisper.URL, "/"),
		model:    cfg.Whisper.ModelPath,
		language: cfg.Whisper.Language,
		client:   client,
		logger:   log,
	}

	if err := e.health(ctx); err != nil {
		return nil, &ModelLoadError{Backend: config.BackendHTTP, Model: e.model, Err: err}
	}

	log.Info(ctx, "Connected to transcription sidecar at %s", e.baseURL)
	return e, nil
}

func (e *implHTTP) health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// Transcribe uploads the media file and decodes the returned segments.
// The request body is streamed so large videos are not held in memory.
func (e *implHTTP) Transcribe(ctx context.Context, mediaPath string) (transcript.Transcript, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("open media file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(e.writeForm(writer, f, filepath.Base(mediaPath)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/transcribe", pr)
	if err != nil {
		pr.Close()
		return transcript.Transcript{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return transcript.Transcript{}, fmt.Errorf("transcription returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out httpTranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return transcript.Transcript{}, fmt.Errorf("decode response: %w", err)
	}

	e.logger.Debug(ctx, "Sidecar returned %d segments for %s", len(out.Segments), mediaPath)

	return transcript.Transcript{
		MediaPath: mediaPath,
		Language:  out.Language,
		Segments:  out.Segments,
	}, nil
}

func (e *implHTTP) writeForm(writer *multipart.Writer, media io.Reader, filename string) error {
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, media); err != nil {
		return fmt.Errorf("write media data: %w", err)
	}

	if e.model != "" {
		if err := writer.WriteField("model", e.model); err != nil {
			return err
		}
	}
	if e.language != "" {
		if err := writer.WriteField("language", e.language); err != nil {
			return err
		}
	}

	return writer.Close()
}
