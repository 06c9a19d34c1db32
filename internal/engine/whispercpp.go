package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
	"github.com/nguyentantai21042004/video-transcriber/internal/transcript"
	"github.com/nguyentantai21042004/video-transcriber/pkg/executor"
)

type implWhisperCPP struct {
	cfg        config.WhisperConfig
	tempDir    string
	whisperBin string
	ffmpegBin  string
	executor   executor.Executor
	logger     logger.Logger
}

// whisperCPPOutput is the subset of whisper.cpp's -oj document we read.
// Offsets are in milliseconds.
type whisperCPPOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func loadWhisperCPP(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	loadErr := func(err error) error {
		return &ModelLoadError{Backend: config.BackendWhisperCPP, Model: cfg.Whisper.ModelPath, Err: err}
	}

	info, err := os.Stat(cfg.Whisper.ModelPath)
	if err != nil {
		return nil, loadErr(fmt.Errorf("stat model: %w", err))
	}
	if info.IsDir() {
		return nil, loadErr(fmt.Errorf("model path is a directory"))
	}

	whisperBin, err := exec.LookPath(cfg.Whisper.BinaryPath)
	if err != nil {
		return nil, loadErr(fmt.Errorf("find whisper binary: %w", err))
	}
	ffmpegBin, err := exec.LookPath(cfg.FFmpeg.BinaryPath)
	if err != nil {
		return nil, loadErr(fmt.Errorf("find ffmpeg binary: %w", err))
	}

	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	log.Info(ctx, "Loaded whisper.cpp model %s (%s, %d threads)", cfg.Whisper.ModelPath, whisperBin, cfg.Whisper.Threads)

	return &implWhisperCPP{
		cfg:        cfg.Whisper,
		tempDir:    cfg.Paths.Temp,
		whisperBin: whisperBin,
		ffmpegBin:  ffmpegBin,
		executor:   exec,
		logger:     log,
	}, nil
}

// Transcribe extracts the audio track and runs whisper.cpp over it.
// Intermediate files live in a per-call directory so concurrent calls do not collide.
func (e *implWhisperCPP) Transcribe(ctx context.Context, mediaPath string) (transcript.Transcript, error) {
	workDir, err := os.MkdirTemp(e.tempDir, "transcribe-*")
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("create work dir: %w", err)
	}
	defer e.cleanupWorkDir(ctx, workDir)

	audioPath, err := e.extractAudio(ctx, mediaPath, workDir)
	if err != nil {
		return transcript.Transcript{}, err
	}

	outputPrefix := filepath.Join(workDir, "transcript")
	if _, err := e.executor.Execute(ctx, e.whisperBin, e.whisperArgs(audioPath, outputPrefix)...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	tr, err := parseWhisperCPPOutput(data)
	if err != nil {
		return transcript.Transcript{}, err
	}
	tr.MediaPath = mediaPath

	e.logger.Debug(ctx, "whisper.cpp returned %d segments for %s", len(tr.Segments), mediaPath)
	return tr, nil
}

// whisperArgs builds the whisper.cpp command line
// -oj: JSON output, -of: output prefix (".json" is appended)
func (e *implWhisperCPP) whisperArgs(audioPath, outputPrefix string) []string {
	language := e.cfg.Language
	if language == "" {
		language = "auto"
	}

	args := []string{
		"-m", e.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-of", outputPrefix,
		"-l", language,
		"-t", strconv.Itoa(e.cfg.Threads),
	}
	if e.cfg.Prompt != "" {
		args = append(args, "--prompt", e.cfg.Prompt)
	}
	if !e.cfg.UseGPU {
		args = append(args, "-ng")
	}

	return args
}

func parseWhisperCPPOutput(data []byte) (transcript.Transcript, error) {
	var out whisperCPPOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return transcript.Transcript{}, fmt.Errorf("parse whisper output: %w", err)
	}

	tr := transcript.Transcript{
		Language: out.Result.Language,
		Segments: make([]transcript.Segment, 0, len(out.Transcription)),
	}
	for _, s := range out.Transcription {
		tr.Segments = append(tr.Segments, transcript.Segment{
			Start: float64(s.Offsets.From) / 1000,
			End:   float64(s.Offsets.To) / 1000,
			Text:  s.Text,
		})
	}

	return tr, nil
}

func (e *implWhisperCPP) cleanupWorkDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", dir, err)
	}
}
