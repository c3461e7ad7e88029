package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	index "github.com/zostay/go-email-index"
	"github.com/zostay/go-email-index/message"
	"github.com/zostay/go-email-index/store/pg"
	"github.com/zostay/go-email-index/term"
)

// docNamespace is the UUID namespace of document ids.
var docNamespace = uuid.MustParse("5d2c7a5e-56f4-4b1a-9a43-2f0a3c1e8b7d")

// DocID returns the document id for a message. Messages with a Message-Id
// are identified by it, so the same message found in two places is one
// document. Others are identified by their content.
func DocID(messageID string, content []byte) string {
	if messageID != "" {
		return uuid.NewSHA1(docNamespace, []byte(messageID)).String()
	}
	return uuid.NewSHA1(docNamespace, content).String()
}

// document is an indexed message.
type document struct {
	pg.Record `yaml:",inline"`
	Terms     []string `json:"terms,omitempty" yaml:"terms,omitempty"`

	terms []term.Term
}

func termStrings(ts []term.Term) []string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = t.String()
	}
	return ss
}

// indexContent parses and indexes a message. It returns nil if the message
// cannot be parsed.
func indexContent(path string, content []byte) *document {
	m, err := message.Parse(bytes.NewReader(content), cfg.ParseOptions()...)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("unable to parse message")
		return nil
	}

	doc := term.NewDocument()
	indexer.IndexMessage(doc, m)

	rec := pg.Record{
		DocID:     DocID(m.MessageID(), content),
		MessageID: m.MessageID(),
		Path:      path,
	}

	if when, err := m.Date(); err == nil {
		rec.When = when
	}

	return &document{Record: rec, terms: doc.Terms()}
}

// indexPath reads and indexes the message in the named file.
func indexPath(path string) (*document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &index.FileError{Filename: path, Err: err}
	}
	return indexContent(path, content), nil
}

func (d *document) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%d terms\n", d.DocID, d.Path, len(d.terms))
	return err
}
