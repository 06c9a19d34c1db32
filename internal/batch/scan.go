package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Scan lists the media files directly inside dir (no recursion) whose
// extension, compared case-insensitively, is one of extensions.
// Directories and dot-files are ignored. Paths are sorted by name.
func Scan(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || !IsMediaFile(e.Name(), extensions) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if !isRegularFile(path, e) {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// isRegularFile follows symlinks; dangling links and links to directories are rejected
func isRegularFile(path string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsMediaFile reports whether path has one of the given extensions.
// extensions are expected lower-case with a leading dot.
func IsMediaFile(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.Contains(extensions, ext)
}

// OutputPaths derives the transcript and subtitle paths for a media file by
// replacing its extension with .txt and .srt. When outDir is empty the outputs
// sit next to the media file.
func OutputPaths(mediaPath, outDir string) (txtPath, srtPath string) {
	if outDir == "" {
		outDir = filepath.Dir(mediaPath)
	}

	name := filepath.Base(mediaPath)
	base := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name)))

	return base + ".txt", base + ".srt"
}
