package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesAddCmd = &cobra.Command{
	Use:   "add <profile_name> <path> [path...]",
	Short: "Create or update a profile with one or more source paths",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newProfileStore()
		if err != nil {
			return err
		}

		name := args[0]
		paths := args[1:]

		if err := store.Upsert(name, paths); err != nil {
			return err
		}

		fmt.Printf("profile %q saved with %d source path(s)\n", name, len(paths))
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesAddCmd)
}
