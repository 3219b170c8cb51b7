package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace recorded results with a previously exported snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		res, closeFn, err := openResults(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := res.Import(cmd.Context(), raw); err != nil {
			return err
		}
		fmt.Printf("Restored %d results\n", res.Count())
		return nil
	},
}
