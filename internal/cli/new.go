package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/appkit-go/appkit/internal/migration"
)

// namePattern restricts migration names to filesystem-safe identifiers.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`) //nolint:gochecknoglobals // compiled once

const newFileTemplate = `-- add forward SQL here

-- DOWN
-- add reverse SQL here, or delete this section to make the migration irreversible
`

var newCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "new <name>",
	Short: "Scaffold the next migration file",
	Long: `New creates {version}_{name}.sql in the migrations directory, where
version is one higher than the highest version already present. The file
contains an up section and a down section separated by a -- DOWN marker.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid migration name %q (use lowercase letters, digits, and underscores)", name)
	}

	dir := AppConfig.MigrationsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating migrations directory %s: %w", dir, err)
	}

	existing, err := migration.LoadFromDir(dir)
	if err != nil {
		return fmt.Errorf("loading migrations from %s: %w", dir, err)
	}

	var version int64 = 1

	for _, m := range existing {
		if m.Version >= version {
			version = m.Version + 1
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%d_%s.sql", version, name))

	if err := os.WriteFile(path, []byte(newFileTemplate), 0o644); err != nil { //nolint:gosec // migration files are not secrets
		return fmt.Errorf("writing migration file %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

	return nil
}
