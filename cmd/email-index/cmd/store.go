package cmd

import (
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store FILE...",
	Short: "Index message files and save their terms to the postgres store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunStore,
}

// RunStore indexes each file and saves the result. It stops at the first file
// that cannot be read.
func RunStore(cmd *cobra.Command, args []string) error {
	docs := make(documents, 0, len(args))
	for _, path := range args {
		doc, err := indexPath(path)
		if err != nil {
			return err
		}

		if doc != nil {
			docs = append(docs, doc)
		}
	}

	if err := saveDocuments(cmd, docs); err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), docs)
}
