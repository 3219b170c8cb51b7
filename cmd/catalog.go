package cmd

import (
	"fmt"

	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the available tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		baseURL, _ := cmd.Flags().GetString("base-url")
		lib := cat.New(cat.NewHTTPFetcher(baseURL), st)

		entries, err := lib.Discover(cmd.Context())
		if err != nil {
			return err
		}

		for _, e := range entries {
			badge := ""
			switch e.Provenance {
			case quiz.ProvenanceCustom:
				badge = " [custom]"
			case quiz.ProvenanceBuiltIn:
				badge = " [built-in]"
			}
			fmt.Printf("%-24s  %-40s  %d questions%s\n", e.ID, e.Title, e.TotalQuestions, badge)
		}
		return nil
	},
}
