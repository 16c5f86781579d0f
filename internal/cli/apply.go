package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "apply",
	Short: "Apply all pending migrations",
	Long: `Apply walks the registered migrations in ascending version order,
each inside its own transaction. Already-applied migrations are verified
against their recorded checksums as the walk reaches them; a mismatch
aborts the run at that point, leaving earlier migrations applied.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	applyCmd.Flags().Bool("dry-run", false, "list pending migrations without executing them")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	eng, closeAll, err := newEngine(out)
	if err != nil {
		return err
	}
	defer closeAll()

	if dryRun {
		statuses, err := eng.Status(cmd.Context())
		if err != nil {
			return err
		}

		pending := 0

		for _, s := range statuses {
			if !s.Applied {
				fmt.Fprintf(out, "Would apply %d_%s\n", s.Version, s.Name)

				pending++
			}
		}

		if pending == 0 {
			fmt.Fprintln(out, "Nothing to apply.")
		}

		return nil
	}

	statuses, err := eng.ApplyPending(cmd.Context())
	if err != nil {
		return err
	}

	applied := 0

	for _, s := range statuses {
		if s.Applied {
			applied++
		}
	}

	fmt.Fprintf(out, "Database up to date: %d of %d migrations applied.\n", applied, len(statuses))

	return nil
}
