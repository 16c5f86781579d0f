package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// downMarker separates forward and reverse SQL inside a migration file.
// It must appear on a line of its own.
const downMarker = "-- DOWN"

// LoadFromDir scans dir (non-recursively) for {version}_{name}.sql files
// and returns the parsed migrations. Loading is all-or-nothing: a single
// malformed filename fails the whole call and nothing is returned.
//
// Files are visited in filename order; callers must treat the numeric
// version as the authoritative ordering (see Sort), since zero-padding may
// make filename order and version order disagree.
func LoadFromDir(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))

	for _, name := range names {
		m, err := readFile(dir, name)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, m)
	}

	return migrations, nil
}

// readFile parses one migration file: filename into version and name,
// contents into up and down sections.
func readFile(dir, filename string) (Migration, error) {
	stem := strings.TrimSuffix(filename, ".sql")

	versionStr, name, ok := strings.Cut(stem, "_")
	if !ok {
		return Migration{}, fmt.Errorf("%w: %s (expected {version}_{name}.sql)", ErrInvalidFilename, filename)
	}

	version, err := strconv.ParseInt(versionStr, 10, 64)
	if err != nil || version < 0 {
		return Migration{}, fmt.Errorf("%w: %s", ErrInvalidVersion, filename)
	}

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return Migration{}, fmt.Errorf("reading migration file %s: %w", filename, err)
	}

	up, down := splitSections(string(data))

	return Migration{
		Version: version,
		Name:    name,
		UpSQL:   up,
		DownSQL: down,
	}, nil
}

// splitSections splits file content at the first line consisting solely of
// the down marker. Without the marker the whole content is the up script
// and the migration is irreversible.
func splitSections(content string) (up, down string) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if strings.TrimRight(line, "\r") == downMarker {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}

	return content, ""
}
