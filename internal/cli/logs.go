package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appkit-go/appkit/internal/logging"
)

var logsCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "logs",
	Short: "Print recent entries from the newest log file",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	logsCmd.Flags().Int("count", 50, "maximum number of entries to print (0 for all)")
	logsCmd.Flags().String("level", "", "only print entries of this level")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	level, _ := cmd.Flags().GetString("level")

	entries, err := logging.ReadEntries(AppConfig.LogDir, count, level)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(entries) == 0 {
		fmt.Fprintln(out, "No log entries.")

		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s [%s] %s\n", entry.Time, entry.Level, entry.Message)
	}

	return nil
}
