package cmd

import (
	"github.com/bugaev/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Quiz runner for the terminal",
	Long:  "QuizDeck is a terminal app for taking, authoring and reviewing multiple-choice tests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB env var)")
	rootCmd.PersistentFlags().String("base-url", "", "Remote test source base URL (overrides QUIZDECK_BASE_URL env var)")
	rootCmd.Flags().Bool("single-attempt", false, "Keep only the latest result per user instead of full history")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
