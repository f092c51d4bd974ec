package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsknk/matrix-server/db"
	"github.com/itsknk/matrix-server/signal"
)

var (
	scanFrom      string
	scanPrefix    string
	scanBackwards bool
	scanLimit     int
)

func init() {
	scanCmd.Flags().StringVar(&scanFrom, "from", "", "Start key (inclusive)")
	scanCmd.Flags().StringVar(&scanPrefix, "prefix", "", "Only keys under this prefix")
	scanCmd.Flags().BoolVar(&scanBackwards, "backwards", false, "Scan in descending key order")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "Stop after this many entries, 0 for all")
	RootCmd.AddCommand(scanCmd)
}

// Stream a range of the selected tree to stdout. The iterator is
// released early when --limit or a signal cuts the scan short.
var scanCmd = &cobra.Command{
	Use:   "scan [--from key] [--prefix p] [--backwards] [--limit n]",
	Short: "List key-value pairs in key order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer closeEngine()

		var it *db.Iterator
		if scanPrefix != "" {
			it = tree.ScanPrefix([]byte(scanPrefix))
		} else {
			it = tree.IterFrom([]byte(scanFrom), scanBackwards)
		}
		defer it.Release()

		signal.Trap(func() {
			it.Release()
			closeEngine()
			os.Exit(0)
		})

		count := 0
		for it.Next() {
			fmt.Printf("%s\t%s\n", it.Key(), it.Value())
			count++
			if scanLimit > 0 && count == scanLimit {
				break
			}
		}

		return it.Err()
	},
}
