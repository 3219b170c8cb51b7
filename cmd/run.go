package cmd

import (
	"fmt"

	"github.com/bugaev/quizdeck/internal/app"
	"github.com/spf13/cobra"
)

// runApp resolves configuration and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	singleAttempt, _ := cmd.Flags().GetBool("single-attempt")

	return app.Run(app.Options{
		DBPath:      dbPath,
		BaseURL:     baseURL,
		KeepHistory: !singleAttempt,
	})
}
