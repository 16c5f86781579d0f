package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "settings",
	Short: "Read and write namespaced application settings",
}

var settingsGetCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "get <namespace> <key>",
	Short: "Print one setting's JSON value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeAll, err := newSettingsStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		value, err := store.Get(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(value))

		return nil
	},
}

var settingsSetCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "set <namespace> <key> <json-value>",
	Short: "Store one setting",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeAll, err := newSettingsStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		return store.Set(cmd.Context(), args[0], args[1], json.RawMessage(args[2]))
	},
}

var settingsDeleteCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "delete <namespace> <key>",
	Short: "Remove one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeAll, err := newSettingsStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		return store.Delete(cmd.Context(), args[0], args[1])
	},
}

var settingsListCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "list <namespace>",
	Short: "Print every setting in a namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeAll, err := newSettingsStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAll()

		all, err := store.GetAll(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(all))
		for key := range all {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, string(all[key]))
		}

		return nil
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsDeleteCmd, settingsListCmd)
	rootCmd.AddCommand(settingsCmd)
}
