package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nguyentantai21042004/video-transcriber/internal/config"
	"github.com/nguyentantai21042004/video-transcriber/internal/transcript"
)

// Run scans the input directory and processes every media file found.
// With batch.on_error=abort the first failure cancels the remaining work and
// is returned; with skip it is recorded in the report and the batch goes on.
func (d *implDriver) Run(ctx context.Context) (Report, error) {
	startTime := time.Now()

	files, err := Scan(d.cfg.Paths.Input, d.cfg.Batch.Extensions)
	if err != nil {
		return Report{}, fmt.Errorf("scan input: %w", err)
	}

	report := Report{Found: len(files)}
	if len(files) == 0 {
		d.logger.Info(ctx, "No media files found in %s", d.cfg.Paths.Input)
		return report, nil
	}

	d.logger.Info(ctx, "Found %d media files in %s (max concurrent: %d, on error: %s)",
		len(files), d.cfg.Paths.Input, d.cfg.Batch.MaxConcurrent, d.cfg.Batch.OnError)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := newSemaphore(d.cfg.Batch.MaxConcurrent)

	for i, path := range files {
		if err := sem.acquire(runCtx); err != nil {
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.release()

			d.logger.Info(runCtx, "[%d/%d] Processing: %s", i+1, len(files), filepath.Base(path))
			res, err := d.ProcessFile(runCtx, path)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil && res.Skipped:
				report.Skipped = append(report.Skipped, res)
			case err == nil:
				report.Processed = append(report.Processed, res)
			case runCtx.Err() != nil && firstErr != nil:
				// cancelled because another file already aborted the batch
			case d.cfg.Batch.OnError == config.OnErrorSkip:
				d.logger.Error(runCtx, "[%d/%d] Failed %s: %v", i+1, len(files), path, err)
				report.Failed = append(report.Failed, FileError{MediaPath: path, Err: err})
			default:
				d.logger.Error(runCtx, "[%d/%d] Failed %s, aborting batch: %v", i+1, len(files), path, err)
				report.Failed = append(report.Failed, FileError{MediaPath: path, Err: err})
				if firstErr == nil {
					firstErr = fmt.Errorf("process %s: %w", path, err)
					cancel()
				}
			}
		}(i, path)
	}

	wg.Wait()

	d.logger.Info(ctx, "Batch finished in %s: %d processed, %d skipped, %d failed",
		time.Since(startTime).Round(time.Millisecond), len(report.Processed), len(report.Skipped), len(report.Failed))

	if firstErr != nil {
		return report, firstErr
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// ProcessFile transcribes one media file, formats the transcript and writes
// the .txt and .srt outputs, overwriting existing ones. A file version this
// driver already transcribed, or is transcribing, is reported as skipped.
func (d *implDriver) ProcessFile(ctx context.Context, mediaPath string) (Result, error) {
	startTime := time.Now()

	txtPath, srtPath := OutputPaths(mediaPath, d.cfg.Paths.Output)
	res := Result{
		MediaPath:    mediaPath,
		TextPath:     txtPath,
		SubtitlePath: srtPath,
	}

	if d.cfg.Batch.SkipExisting && fileExists(txtPath) && fileExists(srtPath) {
		d.logger.Info(ctx, "Outputs already exist, skipping: %s", mediaPath)
		res.Skipped = true
		return res, nil
	}

	key, ok, err := d.claim(mediaPath)
	if err != nil {
		return res, err
	}
	if !ok {
		d.logger.Info(ctx, "Already transcribed or in progress, skipping: %s", mediaPath)
		res.Skipped = true
		return res, nil
	}

	res, err = d.transcribe(ctx, res, startTime)
	if err != nil {
		d.release(key)
	}
	return res, err
}

func (d *implDriver) transcribe(ctx context.Context, res Result, startTime time.Time) (Result, error) {
	mediaPath, txtPath, srtPath := res.MediaPath, res.TextPath, res.SubtitlePath

	tr, err := d.engine.Transcribe(ctx, mediaPath)
	if err != nil {
		return res, fmt.Errorf("transcribe: %w", err)
	}

	plain, srt := transcript.Build(tr.Segments)

	if err := os.MkdirAll(filepath.Dir(txtPath), 0755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(txtPath, plain); err != nil {
		return res, fmt.Errorf("write transcript: %w", err)
	}
	if err := writeFile(srtPath, srt); err != nil {
		return res, fmt.Errorf("write subtitles: %w", err)
	}

	res.Segments = len(tr.Segments)

	d.logger.Info(ctx, "Transcribed %s: %d segments in %s -> %s, %s",
		filepath.Base(mediaPath), res.Segments, time.Since(startTime).Round(time.Millisecond), txtPath, srtPath)

	return res, nil
}
