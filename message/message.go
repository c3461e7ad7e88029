package message

import (
	"strings"
	"time"

	gomessage "github.com/emersion/go-message"
	"github.com/zostay/go-addr/pkg/addr"
)

// Standard header field names read by the accessors.
const (
	Bcc       = "Bcc"
	Cc        = "Cc"
	Date      = "Date"
	From      = "From"
	ListID    = "List-Id"
	MessageID = "Message-Id"
	Subject   = "Subject"
	To        = "To"
)

// Disposition values.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Node is a part of the message tree. Every node in a parsed tree is either a
// *Multipart, a *MessagePart, or a *Leaf.
type Node interface {
	// GetHeader returns the header of the part.
	GetHeader() *gomessage.Header
}

// Multipart is a multipart/* part.
type Multipart struct {
	gomessage.Header

	// Subtype is the lowercased media subtype, such as "mixed" or "signed".
	Subtype string

	// Parts are the sub-parts in the order they appear in the message.
	Parts []Node
}

// GetHeader returns the part header.
func (m *Multipart) GetHeader() *gomessage.Header { return &m.Header }

// MessagePart is a message/rfc822 (or message/global) part.
type MessagePart struct {
	gomessage.Header

	// Message is the embedded message. It is nil if the embedded message
	// could not be parsed.
	Message *Message
}

// GetHeader returns the part header. This is the header of the part
// containing the embedded message, not the header of the embedded message.
func (m *MessagePart) GetHeader() *gomessage.Header { return &m.Header }

// Leaf is a part with content rather than sub-parts.
type Leaf struct {
	gomessage.Header

	// MediaType is the lowercased media type, such as "text/plain".
	MediaType string

	// Disposition is the lowercased Content-disposition, which is usually
	// "inline", "attachment", or empty when not given.
	Disposition string

	// Filename is the decoded filename from the Content-disposition, or the
	// name parameter of the Content-type when that is missing.
	Filename string

	// Content is the body with the transfer encoding decoded. Text in a
	// charset that could be read has also been converted to UTF-8.
	Content []byte
}

// GetHeader returns the part header.
func (l *Leaf) GetHeader() *gomessage.Header { return &l.Header }

// IsAttachment returns true if the part is marked as an attachment.
func (l *Leaf) IsAttachment() bool {
	return l.Disposition == DispositionAttachment
}

// IsContainer returns true if the leaf holds a multipart or an embedded
// message that was not broken up, usually because it was nested too deeply.
// The content is the whole body of the container, sub-part headers and all.
func (l *Leaf) IsContainer() bool {
	return strings.HasPrefix(l.MediaType, "multipart/") || isMessageType(l.MediaType)
}

// Message is a parsed email message.
type Message struct {
	gomessage.Header

	// Root is the top-level part of the message body.
	Root Node

	// Warnings lists the problems found while parsing that did not prevent
	// the message from being read. Warnings from embedded messages are
	// collected here on the outermost message.
	Warnings []error
}

// GetHeader returns the message header.
func (m *Message) GetHeader() *gomessage.Header { return &m.Header }

// addressList parses every field with the given name into a single list.
func (m *Message) addressList(name string) addr.AddressList {
	var al addr.AddressList
	for _, body := range m.Header.Values(name) {
		al = append(al, ParseAddressList(body)...)
	}
	return al
}

// Sender returns the addresses in the From field. It returns nil if there is
// no From field.
func (m *Message) Sender() addr.AddressList {
	return m.addressList(From)
}

// AllRecipients returns the addresses in the To, Cc, and Bcc fields, in that
// order.
func (m *Message) AllRecipients() addr.AddressList {
	var al addr.AddressList
	for _, name := range []string{To, Cc, Bcc} {
		al = append(al, m.addressList(name)...)
	}
	return al
}

// Subject returns the decoded Subject. The second value is false if the
// message has no Subject field.
func (m *Message) Subject() (string, bool) {
	if !m.Header.Has(Subject) {
		return "", false
	}
	return DecodePhrase(m.Header.Get(Subject)), true
}

// HeaderText returns the undecoded body of the first field with the given
// name. The second value is false if the field is not present.
func (m *Message) HeaderText(name string) (string, bool) {
	if !m.Header.Has(name) {
		return "", false
	}
	return m.Header.Get(name), true
}

// MessageID returns the Message-Id with surrounding angle brackets and
// whitespace removed. It returns an empty string when there is none.
func (m *Message) MessageID() string {
	id := strings.TrimSpace(m.Header.Get(MessageID))
	id = strings.TrimPrefix(id, "<")
	id = strings.TrimSuffix(id, ">")
	return strings.TrimSpace(id)
}

// Date parses the Date field with ParseTime. It returns ErrNoSuchField when
// the message has no Date.
func (m *Message) Date() (time.Time, error) {
	if !m.Header.Has(Date) {
		return time.Time{}, ErrNoSuchField
	}
	return ParseTime(m.Header.Get(Date))
}
