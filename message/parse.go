package message

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	gomessage "github.com/emersion/go-message"

	"github.com/zostay/go-email-index/internal/charset"
)

// DefaultMaxDepth is the default depth the parser will recurse into nested
// multipart and message/rfc822 parts.
const DefaultMaxDepth = 10

// Errors that occur during parsing.
var (
	// ErrParse is returned by Parse when the input cannot be read as a
	// message at all. It is also recorded as a warning when an embedded
	// message cannot be read.
	ErrParse = errors.New("unable to parse message")

	// ErrMaxDepth is recorded as a warning when a part is nested deeper than
	// the maximum depth. Such a part is kept as a *Leaf for which
	// IsContainer reports true.
	ErrMaxDepth = errors.New("maximum part depth exceeded")

	// ErrNoSuchField is returned by header accessors when the field is not
	// set.
	ErrNoSuchField = errors.New("no such header field")
)

var initOnce sync.Once

// Init installs the charset support used by go-message to convert text parts
// into UTF-8. It is safe to call more than once; only the first call has any
// effect. Call it when your program starts, before parsing any message.
func Init() {
	initOnce.Do(func() {
		gomessage.CharsetReader = charset.Reader
	})
}

type parser struct {
	maxDepth int
}

var defaultParser = parser{
	maxDepth: DefaultMaxDepth,
}

// ParseOption modifies how Parse works.
type ParseOption func(pr *parser)

// WithMaxDepth sets how many levels of nested multipart and message/rfc822
// parts Parse will descend into. Parts nested deeper are returned as *Leaf
// with their raw content. A depth of 0 means the message body is never broken
// up. A negative depth means there is no limit.
func WithMaxDepth(n int) ParseOption {
	return func(pr *parser) { pr.maxDepth = n }
}

// WithUnlimitedRecursion is a ParseOption that lets Parse descend into parts
// of any depth.
func WithUnlimitedRecursion() ParseOption {
	return WithMaxDepth(-1)
}

// builder accumulates the warnings of a single Parse call.
type builder struct {
	parser
	warnings []error
}

func (b *builder) warn(err error) {
	b.warnings = append(b.warnings, err)
}

// Parse reads a message from r and builds the complete part tree.
//
// Problems that do not prevent reading the message, such as an unknown
// charset or a broken sub-part, are recorded in the Warnings of the returned
// message. An error is returned only when the message header cannot be read
// at all, in which case the error wraps ErrParse.
func Parse(r io.Reader, opts ...ParseOption) (*Message, error) {
	b := &builder{parser: defaultParser}
	for _, opt := range opts {
		opt(&b.parser)
	}

	e, err := gomessage.Read(r)
	if e == nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err != nil {
		b.warn(err)
	}

	m := &Message{
		Header: e.Header,
		Root:   b.node(e, 0, "text/plain"),
	}
	m.Warnings = b.warnings
	return m, nil
}

// deeper reports whether a container at the given depth may be broken up.
func (b *builder) deeper(depth int, mediaType string) bool {
	if b.maxDepth < 0 || depth < b.maxDepth {
		return true
	}
	b.warn(fmt.Errorf("%w: %s part at depth %d", ErrMaxDepth, mediaType, depth))
	return false
}

// mediaTypeOf returns the lowercased media type and parameters of the header
// or defaultType if there is no usable Content-type.
func mediaTypeOf(h *gomessage.Header, defaultType string) (string, map[string]string) {
	// ContentType reports text/plain for a missing field
	if !h.Has("Content-Type") {
		return defaultType, map[string]string{}
	}

	mt, params, err := h.ContentType()
	if err != nil || mt == "" {
		return defaultType, map[string]string{}
	}
	return strings.ToLower(mt), params
}

// dispositionOf returns the lowercased disposition and its parameters. A
// disposition with bad parameters still returns the disposition itself.
func dispositionOf(h *gomessage.Header) (string, map[string]string) {
	disp, params, err := h.ContentDisposition()
	if err == nil {
		return strings.ToLower(disp), params
	}

	raw := h.Get("Content-Disposition")
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	return strings.ToLower(strings.TrimSpace(raw)), map[string]string{}
}

func isMessageType(mediaType string) bool {
	return mediaType == "message/rfc822" || mediaType == "message/global"
}

// node builds the Node for the entity. The defaultType is used when the
// entity has no Content-type.
func (b *builder) node(e *gomessage.Entity, depth int, defaultType string) Node {
	mediaType, params := mediaTypeOf(&e.Header, defaultType)

	switch {
	case strings.HasPrefix(mediaType, "multipart/") && b.deeper(depth, mediaType):
		if mr := e.MultipartReader(); mr != nil {
			return b.multipart(e, mr, mediaType, depth)
		}
	case isMessageType(mediaType) && b.deeper(depth, mediaType):
		return b.messagePart(e, depth)
	}

	return b.leaf(e, mediaType, params)
}

func (b *builder) multipart(
	e *gomessage.Entity,
	mr gomessage.MultipartReader,
	mediaType string,
	depth int,
) Node {
	mp := &Multipart{
		Header:  e.Header,
		Subtype: strings.TrimPrefix(mediaType, "multipart/"),
		Parts:   make([]Node, 0, 2),
	}

	// RFC 2046 5.1.5: parts of a digest are messages unless they say
	// otherwise
	childType := "text/plain"
	if mp.Subtype == "digest" {
		childType = "message/rfc822"
	}

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}

		if p == nil {
			b.warn(fmt.Errorf("reading part %d of %s: %w", len(mp.Parts), mediaType, err))
			break
		}

		if err != nil {
			b.warn(err)
		}

		mp.Parts = append(mp.Parts, b.node(p, depth+1, childType))
	}

	return mp
}

func (b *builder) messagePart(e *gomessage.Entity, depth int) Node {
	mp := &MessagePart{Header: e.Header}

	inner, err := gomessage.Read(e.Body)
	if inner == nil {
		b.warn(fmt.Errorf("%w: embedded message: %w", ErrParse, err))
		return mp
	}

	if err != nil {
		b.warn(err)
	}

	mp.Message = &Message{
		Header: inner.Header,
		Root:   b.node(inner, depth+1, "text/plain"),
	}

	return mp
}

func (b *builder) leaf(e *gomessage.Entity, mediaType string, params map[string]string) Node {
	disp, dispParams := dispositionOf(&e.Header)

	filename := dispParams["filename"]
	if filename == "" {
		filename = params["name"]
	}

	l := &Leaf{
		Header:      e.Header,
		MediaType:   mediaType,
		Disposition: disp,
		Filename:    DecodePhrase(filename),
	}

	if e.Body != nil {
		content, err := io.ReadAll(e.Body)
		if err != nil {
			b.warn(fmt.Errorf("reading %s content: %w", mediaType, err))
		}
		l.Content = content
	}

	return l
}
