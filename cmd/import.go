package cmd

import (
	"fmt"
	"os"
	"strings"

	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-url>",
	Short: "Import a test definition as a custom test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		var raw []byte
		var err error
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			raw, err = cat.FetchURL(cmd.Context(), nil, source)
		} else {
			raw, err = os.ReadFile(source)
		}
		if err != nil {
			return err
		}

		def, err := quiz.Decode(raw)
		if err != nil {
			return err
		}
		def.ID = ""

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
		if _, err := lib.Discover(cmd.Context()); err != nil {
			return err
		}

		stored, err := lib.AddCustom(cmd.Context(), def)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q as %s (%d questions)\n", stored.Title, stored.ID, len(stored.Questions))
		return nil
	},
}
