package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/itsknk/matrix-server/util"
)

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(delCmd)
	RootCmd.AddCommand(incrCmd)
}

// Read one key from the selected tree.
var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value stored at a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer closeEngine()

		value, err := tree.Get([]byte(args[0]))
		if err != nil {
			return err
		}
		if value == nil {
			color.Yellow("Key %q not found", args[0])
			return nil
		}
		fmt.Printf("%s\n", value)

		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a value at a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer closeEngine()

		return tree.Insert([]byte(args[0]), []byte(args[1]))
	},
}

var delCmd = &cobra.Command{
	Use:   "del KEY",
	Short: "Delete a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer closeEngine()

		return tree.Remove([]byte(args[0]))
	},
}

// Bump the counter stored at a key and print its new value.
var incrCmd = &cobra.Command{
	Use:   "incr KEY",
	Short: "Increment the counter stored at a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer closeEngine()

		value, err := tree.Increment([]byte(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", util.BytesUint64(value))

		return nil
	},
}
