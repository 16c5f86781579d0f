package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appkit-go/appkit/internal/engine"
)

var statusCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "status",
	Short: "Show the applied state of every registered migration",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	statusCmd.Flags().String("format", "", "output format: text or json")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = AppConfig.Format
	}

	out := cmd.OutOrStdout()

	eng, closeAll, err := newEngine(out)
	if err != nil {
		return err
	}
	defer closeAll()

	statuses, err := eng.Status(cmd.Context())
	if err != nil {
		return err
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(statuses)
	case "text":
		printStatusTable(out, statuses)

		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}
}

func printStatusTable(out io.Writer, statuses []engine.Status) {
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No migrations registered.")

		return
	}

	fmt.Fprintf(out, "%-10s %-30s %-10s %s\n", "VERSION", "NAME", "APPLIED", "APPLIED AT")

	for _, s := range statuses {
		applied := "no"
		if s.Applied {
			applied = "yes"
		}

		fmt.Fprintf(out, "%-10d %-30s %-10s %s\n", s.Version, s.Name, applied, s.AppliedAt)
	}
}
