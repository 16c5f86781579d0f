package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// rotatingWriter writes to one file per day, named <prefix>-YYYY-MM-DD.log,
// and prunes files older than the retention window. With rotation disabled
// it writes to a single <prefix>.log.
type rotatingWriter struct {
	dir           string
	prefix        string
	daily         bool
	retentionDays int

	mu     sync.Mutex
	curDay string
	file   *os.File
}

func newRotatingWriter(dir, prefix string, daily bool, retentionDays int) (*rotatingWriter, error) {
	w := &rotatingWriter{
		dir:           dir,
		prefix:        prefix,
		daily:         daily,
		retentionDays: retentionDays,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeededLocked(time.Now()); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeededLocked(time.Now()); err != nil {
		return 0, err
	}

	if w.file == nil {
		return 0, io.ErrClosedPipe
	}

	return w.file.Write(p)
}

// Close flushes and closes the current file. Further writes fail.
func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	return err
}

func (w *rotatingWriter) rotateIfNeededLocked(now time.Time) error {
	day := ""
	if w.daily {
		day = now.Format("2006-01-02")
	}

	if w.file != nil && day == w.curDay {
		return nil
	}

	if w.file != nil {
		w.file.Close() //nolint:errcheck // switching files
		w.file = nil
	}

	f, err := os.OpenFile(w.filenameForDay(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	w.file = f
	w.curDay = day
	w.cleanupLocked(now)

	return nil
}

func (w *rotatingWriter) filenameForDay(day string) string {
	if day == "" {
		return filepath.Join(w.dir, w.prefix+".log")
	}

	return filepath.Join(w.dir, w.prefix+"-"+day+".log")
}

func (w *rotatingWriter) cleanupLocked(now time.Time) {
	if !w.daily || w.retentionDays <= 0 {
		return
	}

	cutoff := now.AddDate(0, 0, -w.retentionDays).Format("2006-01-02")
	files, _ := filepath.Glob(filepath.Join(w.dir, w.prefix+"-*.log"))

	for _, f := range files {
		base := filepath.Base(f)
		day := strings.TrimSuffix(strings.TrimPrefix(base, w.prefix+"-"), ".log")

		if len(day) == len("2006-01-02") && day < cutoff {
			os.Remove(f) //nolint:errcheck // best-effort retention cleanup
		}
	}
}
