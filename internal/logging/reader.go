package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one parsed line from a JSON log file.
type Entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"msg"`
	// Raw is the complete original JSON line, including any extra fields.
	Raw string `json:"-"`
}

// ReadEntries reads up to count entries from the most recently modified
// log file in dir, oldest first. Non-JSON lines are skipped. A non-empty
// level keeps only entries of exactly that level. An empty directory
// yields no entries and no error.
func ReadEntries(dir string, count int, level string) ([]Entry, error) {
	latest, err := newestLogFile(dir)
	if err != nil || latest == "" {
		return nil, err
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("reading log file %s: %w", latest, err)
	}

	var entries []Entry

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || !gjson.Valid(line) {
			continue
		}

		entry := Entry{
			Time:    gjson.Get(line, "time").String(),
			Level:   gjson.Get(line, "level").String(),
			Message: gjson.Get(line, "msg").String(),
			Raw:     line,
		}

		if level != "" && entry.Level != level {
			continue
		}

		entries = append(entries, entry)
	}

	if count > 0 && len(entries) > count {
		entries = entries[len(entries)-count:]
	}

	return entries, nil
}

// newestLogFile returns the most recently modified .log file in dir, or
// "" when there is none.
func newestLogFile(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", fmt.Errorf("reading log directory %s: %w", dir, err)
	}

	var (
		newest    string
		newestMod int64
	)

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".log") {
			continue
		}

		info, err := f.Info()
		if err != nil {
			continue
		}

		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(dir, f.Name())
			newestMod = mod
		}
	}

	return newest, nil
}
