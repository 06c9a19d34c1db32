package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileKey identifies one version of a media file. A file that is replaced
// or rewritten gets a new key and is transcribed again.
type fileKey struct {
	path    string
	modTime time.Time
	size    int64
}

// claim marks the current version of mediaPath as taken. It reports false
// when the same version was already claimed by an earlier or in-flight call,
// which happens when watch mode sees a file the initial batch also scanned.
func (d *implDriver) claim(mediaPath string) (fileKey, bool, error) {
	info, err := os.Stat(mediaPath)
	if err != nil {
		return fileKey{}, false, fmt.Errorf("stat media file: %w", err)
	}

	key := fileKey{
		path:    filepath.Clean(mediaPath),
		modTime: info.ModTime(),
		size:    info.Size(),
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.claimed[key] {
		return key, false, nil
	}
	d.claimed[key] = true
	return key, true, nil
}

// release forgets a claim so a failed file can be retried
func (d *implDriver) release(key fileKey) {
	d.mu.Lock()
	delete(d.claimed, key)
	d.mu.Unlock()
}
