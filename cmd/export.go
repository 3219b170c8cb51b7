package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all results to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, closeFn, err := openResults(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		raw, err := res.ExportAll()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("quizdeck_results_%s.json", time.Now().Format("2006-01-02"))
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return err
		}
		fmt.Printf("Exported %d results to %s\n", res.Count(), path)
		return nil
	},
}
