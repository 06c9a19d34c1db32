package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const summaryPrompt = `You are an expert at analysing recorded talks and lessons. Using the transcript below, write a DETAILED summary in the language of the transcript.

Requirements:
- Start with a one sentence title describing the topic of the video
- List ALL main points in the order they appear
- Explain each point in detail, including notes, tips and important warnings
- Keep technical terms as spoken
- Use markdown: headings, bullet points, bold for key terms
- Finish with an "Important notes" section when something needs emphasis

Transcript:
---
%s
---`

// SummarizeAll reads every .txt transcript in transcriptDir, calls Gemini for
// each, and writes <name>.md and <name>.docx into destDir. When the matching
// .srt exists a cleaned <name>.transcript.docx is written as well.
// Transcripts that already have a summary are skipped.
func (s *implSummarizer) SummarizeAll(ctx context.Context, transcriptDir, destDir string) (Stats, error) {
	var stats Stats

	files, err := s.discoverTranscripts(transcriptDir)
	if err != nil {
		return stats, fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", transcriptDir)
		return stats, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return stats, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcripts to summarize", len(files))

	for i, txtPath := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := strings.TrimSuffix(filepath.Base(txtPath), filepath.Ext(txtPath))
		mdPath := filepath.Join(destDir, name+".md")

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "[%d/%d] Summary exists, skipping: %s", i+1, len(files), name)
			stats.Skipped++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		if err := s.summarizeOne(ctx, txtPath, name, destDir); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			stats.Failed++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		stats.Succeeded++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d skipped, %d failed", stats.Succeeded, stats.Skipped, stats.Failed)
	return stats, nil
}

func (s *implSummarizer) summarizeOne(ctx context.Context, txtPath, name, destDir string) error {
	content, err := os.ReadFile(txtPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("transcript is empty")
	}

	summary, err := s.callGemini(ctx, string(content))
	if err != nil {
		return err
	}
	summary = strings.TrimSpace(summary)

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		summary,
	)

	if err := markdownToDocx(name, summary, filepath.Join(destDir, name+".docx")); err != nil {
		return fmt.Errorf("write summary docx: %w", err)
	}

	srtPath := strings.TrimSuffix(txtPath, filepath.Ext(txtPath)) + ".srt"
	if srt, err := os.ReadFile(srtPath); err == nil {
		if err := srtToDocx(name, string(srt), filepath.Join(destDir, name+".transcript.docx")); err != nil {
			s.logger.Warn(ctx, "Failed to write transcript docx for %s: %v", name, err)
		}
	}

	// markdown last: its presence marks the transcript as done
	if err := os.WriteFile(filepath.Join(destDir, name+".md"), []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func (s *implSummarizer) discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
