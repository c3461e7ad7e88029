package index

import (
	"github.com/zostay/go-email-index/header"
	"github.com/zostay/go-email-index/message"
	"github.com/zostay/go-email-index/term"
)

func (p *pass) indexSubject(subject string) {
	p.msg.GenTerms(term.PrefixSubject, header.SkipRe(subject))
}

// indexListID indexes the list identifier and the decoded description of a
// List-Id field. Nothing is indexed if there is no identifier.
func (p *pass) indexListID(listID string) {
	id, description, ok := header.ParseListID(listID)
	if !ok {
		return
	}

	p.msg.GenTerms(term.PrefixListID, id)

	if description = message.DecodePhrase(description); description != "" {
		p.msg.GenTerms(term.PrefixListID, description)
	}
}
