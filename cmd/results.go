package cmd

import (
	"fmt"
	"sort"

	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded results and statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, closeFn, err := openResults(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if res.Count() == 0 {
			fmt.Println("No results recorded yet.")
			return nil
		}

		fmt.Printf("Attempts: %d    Average: %d%%\n\n", res.Count(), res.AverageOverall())

		titles := make(map[string]string)
		for _, r := range res.List() {
			titles[r.TestID] = r.TestTitle
		}
		stats := res.AggregateByTest()
		ids := make([]string, 0, len(stats))
		for id := range stats {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			st := stats[id]
			title := titles[id]
			if title == "" {
				title = id
			}
			fmt.Printf("%-40s  %3d attempts   avg %3d%%\n", title, st.Count, st.AveragePercentage)
		}

		fmt.Println("\nBest results:")
		for i, r := range res.TopN(5) {
			fmt.Printf("%d. %-24s  %-30s  %3d%%\n", i+1, r.UserName, r.TestTitle, r.Percentage)
		}
		return nil
	},
}

// openResults opens the store and loads the result collection. The
// returned func closes the store.
func openResults(cmd *cobra.Command) (*results.Store, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	res := results.New(st, results.Config{KeepHistory: true})
	res.Load(cmd.Context())
	return res, func() { _ = st.Close() }, nil
}
