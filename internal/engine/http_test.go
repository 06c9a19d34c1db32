package engine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

func newSidecar(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("audio")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, _ := io.ReadAll(file)
		if string(data) != "video-bytes" || header.Filename != "clip.mp4" {
			http.Error(w, "unexpected upload", http.StatusBadRequest)
			return
		}
		if r.FormValue("language") != "en" {
			http.Error(w, "missing language", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"language": "en",
			"segments": []map[string]any{
				{"start": 0.0, "end": 1.2, "text": "Hi"},
				{"start": 1.2, "end": 2.0, "text": " there"},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func httpConfig(url string) *config.Config {
	return &config.Config{
		Whisper: config.WhisperConfig{
			Backend:  config.BackendHTTP,
			URL:      url,
			Language: "en",
		},
	}
}

func TestHTTPTranscribe(t *testing.T) {
	ctx := context.Background()
	srv := newSidecar(t, true)

	mediaPath := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(mediaPath, []byte("video-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	eng, err := Load(ctx, httpConfig(srv.URL+"/"), nil, logger.Nop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tr, err := eng.Transcribe(ctx, mediaPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if tr.MediaPath != mediaPath || tr.Language != "en" {
		t.Errorf("transcript = %+v", tr)
	}
	if len(tr.Segments) != 2 || tr.Segments[1].Text != " there" || tr.Segments[0].End != 1.2 {
		t.Errorf("segments = %+v", tr.Segments)
	}
}

func TestHTTPLoadUnhealthy(t *testing.T) {
	srv := newSidecar(t, false)

	_, err := Load(context.Background(), httpConfig(srv.URL), nil, logger.Nop())
	var loadErr *ModelLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want *ModelLoadError", err)
	}
	if loadErr.Backend != config.BackendHTTP {
		t.Errorf("Backend = %q", loadErr.Backend)
	}
}

func TestHTTPTranscribeMissingFile(t *testing.T) {
	ctx := context.Background()
	srv := newSidecar(t, true)

	eng, err := Load(ctx, httpConfig(srv.URL), nil, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Transcribe(ctx, filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("Transcribe() should fail for a missing file")
	}
}

func TestHTTPTranscribeServerError(t *testing.T) {
	ctx := context.Background()
	srv := newSidecar(t, true)

	// wrong filename makes the sidecar reject the upload
	mediaPath := filepath.Join(t.TempDir(), "other.mp4")
	if err := os.WriteFile(mediaPath, []byte("video-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	eng, err := Load(ctx, httpConfig(srv.URL), nil, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Transcribe(ctx, mediaPath); err == nil {
		t.Error("Transcribe() should fail on a non-200 response")
	}
}
