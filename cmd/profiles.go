package cmd

import (
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage save-backup profiles",
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
