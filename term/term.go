// Package term defines the interface between the indexer and whatever stores
// the search terms it generates, along with a simple in-memory store.
//
// A term is a (prefix, value) pair. The prefix names the field the term was
// drawn from, such as "from" or "subject". Body text generates terms with an
// empty prefix.
package term

// Prefix names used by the indexer.
const (
	PrefixNone       = ""
	PrefixFrom       = "from"
	PrefixTo         = "to"
	PrefixSubject    = "subject"
	PrefixAttachment = "attachment"
	PrefixListID     = "listid"
	PrefixTag        = "tag"
)

// TagAttachment is the tag term added to messages with an attachment.
const TagAttachment = "attachment"

// MaxTermLength is the longest token, in bytes, that GenTerms will keep. This
// matches the term length limit of common full-text engines.
const MaxTermLength = 245

// Message is the term accumulator for a single message being indexed.
type Message interface {
	// AddTerm adds the value as a single literal term under the prefix.
	AddTerm(prefix, value string)

	// GenTerms tokenizes text and adds a term for each token under the
	// prefix. Use PrefixNone for unprefixed terms.
	GenTerms(prefix, text string)
}

// Term is a single search term.
type Term struct {
	Prefix string
	Value  string
}

// String returns the term as "prefix:value", or just the value when the term
// has no prefix.
func (t Term) String() string {
	if t.Prefix == PrefixNone {
		return t.Value
	}
	return t.Prefix + ":" + t.Value
}

// Less orders terms by prefix and then by value.
func (t Term) Less(o Term) bool {
	if t.Prefix != o.Prefix {
		return t.Prefix < o.Prefix
	}
	return t.Value < o.Value
}
