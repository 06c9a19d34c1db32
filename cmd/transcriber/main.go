package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

// CLI is the command line of the transcriber binary
type CLI struct {
	Config   string `short:"c" default:"config.yaml" type:"path" help:"Path to the YAML configuration file"`
	LogLevel string `env:"TRANSCRIBER_LOG_LEVEL" help:"Override logging.level (debug, info, warn, error)"`

	Run       RunCMD       `cmd:"" default:"withargs" help:"Transcribe every video in the input directory once (default)"`
	Watch     WatchCMD     `cmd:"" help:"Transcribe the input directory, then keep transcribing new videos as they appear"`
	Summarize SummarizeCMD `cmd:"" help:"Summarize existing transcripts with Gemini"`
}

// application carries what every command needs
type application struct {
	ctx    context.Context
	cfg    *config.Config
	logger logger.Logger
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("transcriber"),
		kong.Description("Batch-transcribe videos into plain-text transcripts and SRT subtitles."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Video Transcriber (%s/%s, %d CPUs)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Debug(ctx, "Configuration loaded from %s", cli.Config)

	app := &application{ctx: ctx, cfg: cfg, logger: log}
	if err := kctx.Run(app); err != nil {
		log.Error(ctx, "%s failed: %v", kctx.Command(), err)
		os.Exit(1)
	}
}
