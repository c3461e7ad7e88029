package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	index "github.com/zostay/go-email-index"
	"github.com/zostay/go-email-index/term"
)

var termsCmd = &cobra.Command{
	Use:   "terms FILE...",
	Short: "Print the search terms of message files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunTerms,
}

type fileTerms struct {
	Path   string   `json:"path" yaml:"path"`
	Status string   `json:"status" yaml:"status"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
	Terms  []string `json:"terms" yaml:"terms"`
}

type termsResult []fileTerms

func (r termsResult) writeText(w io.Writer) error {
	for _, ft := range r {
		if _, err := fmt.Fprintf(w, "%s: %s\n", ft.Path, ft.Status); err != nil {
			return err
		}
		for _, t := range ft.Terms {
			if _, err := fmt.Fprintf(w, "\t%s\n", t); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunTerms indexes each file and prints its terms. Files that cannot be
// opened are reported and make the command fail after every file has been
// tried.
func RunTerms(cmd *cobra.Command, args []string) error {
	result := make(termsResult, 0, len(args))
	failed := 0
	for _, path := range args {
		doc := term.NewDocument()
		err := indexer.IndexFile(doc, path)

		ft := fileTerms{
			Path:   path,
			Status: index.StatusOf(err).String(),
			Terms:  termStrings(doc.Terms()),
		}
		if err != nil {
			ft.Error = err.Error()
			failed++
		}

		result = append(result, ft)
	}

	if err := render(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be opened", failed, len(args))
	}
	return nil
}
