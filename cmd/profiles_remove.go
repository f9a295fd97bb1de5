package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesRemoveCmd = &cobra.Command{
	Use:   "remove <profile_name>",
	Short: "Delete a profile (does not touch its backup archives)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newProfileStore()
		if err != nil {
			return err
		}

		if err := store.Delete(args[0]); err != nil {
			return err
		}

		fmt.Printf("profile %q removed\n", args[0])
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesRemoveCmd)
}
