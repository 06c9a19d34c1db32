package batch

import "context"

// Driver transcribes the media files of the input directory
type Driver interface {
	// Run processes every media file currently in the input directory.
	Run(ctx context.Context) (Report, error)
	// ProcessFile transcribes one media file and writes its .txt and .srt outputs.
	ProcessFile(ctx context.Context, mediaPath string) (Result, error)
}

// Result describes the outputs produced for one media file
type Result struct {
	MediaPath    string
	TextPath     string
	SubtitlePath string
	Segments     int
	Skipped      bool
}

// FileError is a per-file failure recorded when the batch continues past errors
type FileError struct {
	MediaPath string
	Err       error
}

// Report summarises a Run
type Report struct {
	Found     int
	Processed []Result
	Skipped   []Result
	Failed    []FileError
}
