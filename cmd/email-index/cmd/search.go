package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-index/store/pg"
	"github.com/zostay/go-email-index/term"
)

var (
	searchCmd = &cobra.Command{
		Use:   "search [PREFIX:]WORD",
		Short: "Find stored messages having a term",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSearch,
	}

	searchLimit int
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "return at most this many messages")
}

// ErrBadQuery is returned when a search is not a single word.
var ErrBadQuery = errors.New("search must be a single word with an optional prefix")

// ParseQuery splits a search into the term prefix and the word. The word is
// tokenized the same way terms are, so it must hold exactly one token.
func ParseQuery(q string) (term.Term, error) {
	prefix, word, found := strings.Cut(q, ":")
	if !found {
		prefix, word = term.PrefixNone, q
	}

	toks := term.Tokenize(word)
	if len(toks) != 1 {
		return term.Term{}, fmt.Errorf("%w: %q", ErrBadQuery, q)
	}

	return term.Term{Prefix: strings.ToLower(prefix), Value: toks[0]}, nil
}

type records []pg.Record

func (rs records) writeText(w io.Writer) error {
	for _, r := range rs {
		when := "-"
		if !r.When.IsZero() {
			when = r.When.Format(time.RFC3339)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.DocID, when, r.MessageID, r.Path); err != nil {
			return err
		}
	}
	return nil
}

// RunSearch prints the stored messages having the term.
func RunSearch(cmd *cobra.Command, args []string) error {
	t, err := ParseQuery(args[0])
	if err != nil {
		return err
	}

	s, err := pg.Open(cmd.Context(), cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	found, err := s.Search(cmd.Context(), t.Prefix, t.Value, searchLimit)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), records(found))
}
