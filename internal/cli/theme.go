package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "theme",
	Short: "Inspect and switch the active theme",
}

var themeListCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "list",
	Short: "List registered themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, closeAll, err := newThemeRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		active := registry.Active().Name

		for _, def := range registry.List() {
			marker := " "
			if def.Name == active {
				marker = "*"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, def.Name, def.Mode)
		}

		return nil
	},
}

var themeGetCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "get",
	Short: "Print the active theme as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, closeAll, err := newThemeRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(registry.Active())
	},
}

var themeSetCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "set <name>",
	Short: "Switch the active theme and persist the selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, closeAll, err := newThemeRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		def, err := registry.SetActive(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Active theme: %s (%s)\n", def.Name, def.Mode)

		return nil
	},
}

var themeCSSCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "css",
	Short: "Render the active theme as a CSS :root block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, closeAll, err := newThemeRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		fmt.Fprintln(cmd.OutOrStdout(), registry.CSS())

		return nil
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	themeCmd.AddCommand(themeListCmd, themeGetCmd, themeSetCmd, themeCSSCmd)
	rootCmd.AddCommand(themeCmd)
}
