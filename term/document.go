package term

import "sort"

// Document is an in-memory Message. Terms are kept as a set, so adding the
// same term more than once has no further effect. A Document is not safe for
// concurrent use.
type Document struct {
	terms map[Term]struct{}
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{terms: make(map[Term]struct{})}
}

// AddTerm adds a literal term. Empty values are ignored.
func (d *Document) AddTerm(prefix, value string) {
	if value == "" {
		return
	}
	if d.terms == nil {
		d.terms = make(map[Term]struct{})
	}
	d.terms[Term{prefix, value}] = struct{}{}
}

// GenTerms adds a term for every token that Tokenize finds in text.
func (d *Document) GenTerms(prefix, text string) {
	for _, tok := range Tokenize(text) {
		d.AddTerm(prefix, tok)
	}
}

// Has returns true if the given term has been added.
func (d *Document) Has(prefix, value string) bool {
	_, has := d.terms[Term{prefix, value}]
	return has
}

// Len returns the number of distinct terms.
func (d *Document) Len() int {
	return len(d.terms)
}

// Terms returns all the terms sorted by prefix and value.
func (d *Document) Terms() []Term {
	ts := make([]Term, 0, len(d.terms))
	for t := range d.terms {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Less(ts[j]) })
	return ts
}

// Values returns the sorted values of every term with the given prefix.
func (d *Document) Values(prefix string) []string {
	vs := make([]string, 0)
	for t := range d.terms {
		if t.Prefix == prefix {
			vs = append(vs, t.Value)
		}
	}
	sort.Strings(vs)
	return vs
}

// Reset removes all terms.
func (d *Document) Reset() {
	d.terms = make(map[Term]struct{})
}

var _ Message = (*Document)(nil)
