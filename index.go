package index

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/zostay/go-email-index/message"
	"github.com/zostay/go-email-index/term"
)

// Errors returned or raised by the indexer.
var (
	// ErrFile is wrapped by every *FileError.
	ErrFile = errors.New("unable to open message file")

	// ErrInternal is wrapped by the value of a panic raised when the parser
	// hands the indexer something it promised never to produce.
	ErrInternal = errors.New("internal error")
)

// FileError is returned by IndexFile when the message file cannot be opened.
type FileError struct {
	Filename string
	Err      error
}

// Error describes the file that could not be opened.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFile, e.Filename, e.Err)
}

// Unwrap returns ErrFile and the underlying error.
func (e *FileError) Unwrap() []error {
	return []error{ErrFile, e.Err}
}

// Status is the outcome of indexing a message file.
type Status int

const (
	StatusSuccess   Status = iota // the message was indexed
	StatusFileError               // the message file could not be opened
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFileError:
		return "file_error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusOf converts an error returned by the Indexer into a Status. A nil
// error is StatusSuccess. Since the only error the Indexer returns is a
// *FileError, any other error is StatusFileError as well.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	return StatusFileError
}

// Indexer generates search terms for email messages. It holds no state
// between calls and is safe for concurrent use, as long as each call is given
// its own term.Message.
type Indexer struct {
	logger    zerolog.Logger
	metrics   *Metrics
	parseOpts []message.ParseOption
}

// Option configures an Indexer.
type Option func(ix *Indexer)

// WithLogger sets the logger that receives indexing warnings. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(ix *Indexer) { ix.logger = logger }
}

// WithMetrics sets the metrics to update while indexing. The default is to
// record nothing.
func WithMetrics(m *Metrics) Option {
	return func(ix *Indexer) { ix.metrics = m }
}

// WithParseOptions sets the options passed to message.Parse.
func WithParseOptions(opts ...message.ParseOption) Option {
	return func(ix *Indexer) { ix.parseOpts = append(ix.parseOpts, opts...) }
}

// New returns an Indexer configured with the given options.
func New(opts ...Option) *Indexer {
	ix := &Indexer{
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(ix)
	}

	return ix
}

// IndexFile opens the named file and indexes the message in it. If the file
// cannot be opened, a *FileError is returned and no terms are added.
// Otherwise the result is the same as IndexReader.
func (ix *Indexer) IndexFile(msg term.Message, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		ix.logger.Error().
			Err(err).
			Str("filename", filename).
			Msg("error opening message file")
		ix.metrics.message(StatusFileError)
		return &FileError{Filename: filename, Err: err}
	}
	defer func() { _ = f.Close() }()

	ix.index(msg, f, ix.logger.With().Str("filename", filename).Logger())
	return nil
}

// IndexReader parses the message read from r and indexes it. A message that
// cannot be parsed is logged and produces no terms, but it is not an error,
// so IndexReader always returns nil. The error return is there for
// symmetry with IndexFile.
func (ix *Indexer) IndexReader(msg term.Message, r io.Reader) error {
	ix.index(msg, r, ix.logger)
	return nil
}

func (ix *Indexer) index(msg term.Message, r io.Reader, logger zerolog.Logger) {
	m, err := message.Parse(r, ix.parseOpts...)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to parse message")
		ix.metrics.warning(reasonParse)
		ix.metrics.message(StatusSuccess)
		return
	}

	ix.indexMessage(msg, m, logger)
}

// IndexMessage adds the terms for an already parsed message: the From
// addresses, then the To, Cc, and Bcc addresses, then the Subject, then the
// List-Id, and finally the body.
//
// It panics with an error wrapping ErrInternal if an address list holds an
// address that is neither a mailbox nor a group.
func (ix *Indexer) IndexMessage(msg term.Message, m *message.Message) {
	ix.indexMessage(msg, m, ix.logger)
}

func (ix *Indexer) indexMessage(msg term.Message, m *message.Message, logger zerolog.Logger) {
	if id := m.MessageID(); id != "" {
		logger = logger.With().Str("message_id", id).Logger()
	}

	p := &pass{
		Indexer: ix,
		msg:     msg,
		logger:  logger,
	}

	for _, w := range m.Warnings {
		p.logger.Warn().Err(w).Msg("problem parsing message")
		p.metrics.warning(reasonParser)
	}

	p.indexAddressList(term.PrefixFrom, m.Sender())
	p.indexAddressList(term.PrefixTo, m.AllRecipients())

	if subject, ok := m.Subject(); ok {
		p.indexSubject(subject)
	}

	if listID, ok := m.HeaderText(message.ListID); ok {
		p.indexListID(listID)
	}

	p.indexPart(m.Root)

	p.metrics.message(StatusSuccess)
}

// pass holds what is needed while indexing a single message.
type pass struct {
	*Indexer
	msg    term.Message
	logger zerolog.Logger
}
