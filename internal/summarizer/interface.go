package summarizer

import "context"

// Summarizer reads plain transcripts and produces LLM-generated markdown and DOCX summaries.
type Summarizer interface {
	SummarizeAll(ctx context.Context, transcriptDir, destDir string) (Stats, error)
}

// Stats counts the outcome of a SummarizeAll call
type Stats struct {
	Succeeded int
	Skipped   int
	Failed    int
}
