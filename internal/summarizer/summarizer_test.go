package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/video-transcriber/internal/logger"
)

func newTestSummarizer(keys []string, gen generateFunc) *implSummarizer {
	return &implSummarizer{
		apiKeys:  keys,
		logger:   logger.Nop(),
		model:    "gemini-2.5-flash",
		generate: gen,
	}
}

func TestCallGeminiRotatesKeys(t *testing.T) {
	var used []string
	gen := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		used = append(used, apiKey)
		if apiKey == "key-1" {
			return "", errors.New("generate content: Error 429, RESOURCE_EXHAUSTED")
		}
		if !strings.Contains(prompt, "hello transcript") {
			t.Errorf("prompt does not contain the transcript")
		}
		return "summary", nil
	}

	s := newTestSummarizer([]string{"key-1", "key-2"}, gen)
	got, err := s.callGemini(context.Background(), "hello transcript")
	if err != nil {
		t.Fatalf("callGemini() error = %v", err)
	}
	if got != "summary" {
		t.Errorf("callGemini() = %q", got)
	}
	if !reflect.DeepEqual(used, []string{"key-1", "key-2"}) {
		t.Errorf("keys used = %v", used)
	}
	if s.currentKey != 1 {
		t.Errorf("currentKey = %d, want 1", s.currentKey)
	}
}

func TestCallGeminiAllKeysExhausted(t *testing.T) {
	gen := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}

	s := newTestSummarizer([]string{"a", "b", "c"}, gen)
	_, err := s.callGemini(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "all API keys exhausted") {
		t.Errorf("callGemini() error = %v", err)
	}
}

func TestCallGeminiNonRetryableError(t *testing.T) {
	calls := 0
	gen := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		calls++
		return "", errors.New("permission denied")
	}

	s := newTestSummarizer([]string{"a", "b"}, gen)
	if _, err := s.callGemini(context.Background(), "text"); err == nil {
		t.Error("callGemini() should fail")
	}
	if calls != 1 {
		t.Errorf("generate called %d times, want 1", calls)
	}
}

func TestCallGeminiNoKeys(t *testing.T) {
	s := newTestSummarizer(nil, nil)
	if _, err := s.callGemini(context.Background(), "text"); err == nil {
		t.Error("callGemini() should fail without keys")
	}
}

func TestSubtitleParagraphs(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:01,000\n Hello\n\n" +
		"2\n00:00:01,000 --> 00:00:02,000\n Hello\n\n" +
		"3\n00:00:02,000 --> 00:00:03,000\n world\n\n" +
		"4\n00:00:03,000 --> 00:00:04,000\n again\n\n"

	got := subtitleParagraphs(srt, 2)
	want := []string{"Hello world", "again"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subtitleParagraphs() = %q, want %q", got, want)
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**bold** __under__ `code`"); got != "bold under code" {
		t.Errorf("cleanMarkdownInline() = %q", got)
	}
}

func TestDiscoverTranscripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "a.srt", ".hidden.txt", "c.TXT"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s := newTestSummarizer(nil, nil)
	files, err := s.discoverTranscripts(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.TXT")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("discoverTranscripts() = %v, want %v", files, want)
	}
}

func TestSummarizeAll(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "summaries")

	files := map[string]string{
		"talk.txt":  "Hi there",
		"talk.srt":  "1\n00:00:00,000 --> 00:00:01,000\nHi\n\n",
		"empty.txt": "  ",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	gen := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		return "## Topic\n\n- **Greeting** said\n", nil
	}
	s := newTestSummarizer([]string{"key"}, gen)

	stats, err := s.SummarizeAll(context.Background(), src, dest)
	if err != nil {
		t.Fatalf("SummarizeAll() error = %v", err)
	}
	if stats.Succeeded != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}

	md, err := os.ReadFile(filepath.Join(dest, "talk.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "# talk\n") || !strings.Contains(string(md), "**Greeting**") {
		t.Errorf("markdown = %q", md)
	}
	for _, name := range []string{"talk.docx", "talk.transcript.docx"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	// second run skips the finished transcript
	stats, err = s.SummarizeAll(context.Background(), src, dest)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 {
		t.Errorf("second run stats = %+v", stats)
	}
}
