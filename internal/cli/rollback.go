package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "rollback",
	Short: "Roll back the most recently applied migration",
	Long: `Rollback reverses exactly one migration: the highest applied
version. It runs that migration's down script and removes its tracking
record in a single transaction. Run it again to step back further.`,
	Args: cobra.NoArgs,
	RunE: runRollback,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	eng, closeAll, err := newEngine(out)
	if err != nil {
		return err
	}
	defer closeAll()

	status, err := eng.RollbackLast(cmd.Context())
	if err != nil {
		return err
	}

	if status == nil {
		fmt.Fprintln(out, "Nothing to roll back.")
	}

	return nil
}
