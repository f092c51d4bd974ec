package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Force a durable sync of the database file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		// Syncing touches no tree, only the environment.
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer closeEngine()

		if err := e.Flush(); err != nil {
			return err
		}
		color.Green("Database synced at %s", e.Path())

		return nil
	},
}
