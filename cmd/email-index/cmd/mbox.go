package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-mbox"
	"github.com/spf13/cobra"

	"github.com/zostay/go-email-index/store/pg"
)

var (
	mboxCmd = &cobra.Command{
		Use:   "mbox FILE",
		Short: "Index every message in an mbox file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunMbox,
	}

	mboxStore bool
	mboxTerms bool
)

func init() {
	mboxCmd.Flags().BoolVarP(&mboxStore, "store", "s", false, "save the terms to the postgres store")
	mboxCmd.Flags().BoolVarP(&mboxTerms, "terms", "t", false, "include the terms in the output")
}

type documents []*document

func (ds documents) writeText(w io.Writer) error {
	for _, d := range ds {
		if err := d.writeText(w); err != nil {
			return err
		}
		for _, t := range d.Terms {
			if _, err := fmt.Fprintf(w, "\t%s\n", t); err != nil {
				return err
			}
		}
	}
	return nil
}

// readMbox indexes each message of the mbox file.
func readMbox(path string) (documents, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var docs documents
	r := mbox.NewReader(f)
	for i := 0; ; i++ {
		mr, err := r.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return docs, fmt.Errorf("message %d of %s: %w", i, path, err)
		}

		content, err := io.ReadAll(mr)
		if err != nil {
			return docs, fmt.Errorf("message %d of %s: %w", i, path, err)
		}

		doc := indexContent(fmt.Sprintf("%s#%d", path, i), content)
		if doc == nil {
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// RunMbox indexes the messages of an mbox file, optionally saving them to the
// store, and prints a line for each.
func RunMbox(cmd *cobra.Command, args []string) error {
	docs, err := readMbox(args[0])
	if err != nil {
		return err
	}

	if mboxStore {
		if err := saveDocuments(cmd, docs); err != nil {
			return err
		}
	}

	if mboxTerms {
		for _, d := range docs {
			d.Terms = termStrings(d.terms)
		}
	}

	return render(cmd.OutOrStdout(), docs)
}

// saveDocuments writes the documents to the postgres store.
func saveDocuments(cmd *cobra.Command, docs documents) error {
	s, err := pg.Open(cmd.Context(), cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, d := range docs {
		if err := s.Save(cmd.Context(), d.Record, d.terms); err != nil {
			return err
		}
		logger.Debug().Str("doc_id", d.DocID).Str("path", d.Path).Msg("saved")
	}

	return nil
}
