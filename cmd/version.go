package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/itsknk/matrix-server/db"
)

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mxkv version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mxkv v%s %s/%s\n", db.Version, runtime.GOOS, runtime.GOARCH)
	},
}
