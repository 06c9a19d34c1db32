package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	BackendWhisperCPP = "whisper-cpp"
	BackendHTTP       = "http"

	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

type Config struct {
	Whisper WhisperConfig `yaml:"whisper"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Paths   PathsConfig   `yaml:"paths"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
	Gemini  GeminiConfig  `yaml:"gemini"`
}

type WhisperConfig struct {
	Backend    string        `yaml:"backend"`
	ModelPath  string        `yaml:"model_path"`
	BinaryPath string        `yaml:"binary_path"`
	Language   string        `yaml:"language"`
	Prompt     string        `yaml:"prompt"`
	Threads    int           `yaml:"threads"`
	UseGPU     bool          `yaml:"use_gpu"`
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Temp      string `yaml:"temp"`
	Summaries string `yaml:"summaries"`
}

// BatchConfig controls how the input directory is processed.
// An empty Output path means transcripts are written next to their video.
type BatchConfig struct {
	Extensions    []string `yaml:"extensions"`
	OnError       string   `yaml:"on_error"`
	MaxConcurrent int      `yaml:"max_concurrent"`
	SkipExisting  bool     `yaml:"skip_existing"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// DefaultExtensions are the video formats picked up when batch.extensions is empty.
var DefaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov"}

func (c *Config) Validate() error {
	if c.Whisper.Backend == "" {
		c.Whisper.Backend = BackendWhisperCPP
	}

	switch c.Whisper.Backend {
	case BackendWhisperCPP:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case BackendHTTP:
		if c.Whisper.URL == "" {
			return fmt.Errorf("whisper.url is required for the http backend")
		}
	default:
		return fmt.Errorf("whisper.backend must be %q or %q (got: %s)", BackendWhisperCPP, BackendHTTP, c.Whisper.Backend)
	}

	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}

	if c.Batch.OnError == "" {
		c.Batch.OnError = OnErrorAbort
	}
	if c.Batch.OnError != OnErrorAbort && c.Batch.OnError != OnErrorSkip {
		return fmt.Errorf("batch.on_error must be %q or %q (got: %s)", OnErrorAbort, OnErrorSkip, c.Batch.OnError)
	}
	if c.Batch.MaxConcurrent < 0 {
		return fmt.Errorf("batch.max_concurrent must not be negative")
	}

	if len(c.Batch.Extensions) == 0 {
		c.Batch.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range c.Batch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Batch.Extensions[i] = ext
	}

	if c.Batch.MaxConcurrent == 0 {
		c.Batch.MaxConcurrent = 1
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "data/summaries"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.Timeout == 0 {
		c.Whisper.Timeout = 30 * time.Minute
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
