package index

import (
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-email-index/message"
)

// indexAddressList indexes every mailbox in the list under the prefix.
func (p *pass) indexAddressList(prefix string, al addr.AddressList) {
	for _, a := range al {
		switch v := a.(type) {
		case *addr.Mailbox:
			p.indexMailboxOf(prefix, v)
		case *addr.AddrSpec:
			p.indexMailbox(prefix, "", false, v.Address())
		case *addr.Group:
			p.indexGroup(prefix, v)
		default:
			panic(fmt.Errorf("%w: address %T is neither a mailbox nor a group", ErrInternal, a))
		}
	}
}

// indexGroup indexes the group members. The group name is not indexed.
func (p *pass) indexGroup(prefix string, g *addr.Group) {
	for _, mb := range g.MailboxList() {
		p.indexMailboxOf(prefix, mb)
	}
}

func (p *pass) indexMailboxOf(prefix string, mb *addr.Mailbox) {
	name, named := message.MailboxName(mb)
	p.indexMailbox(prefix, name, named, mb.Address())
}

// indexMailbox indexes the name and the address. When the mailbox has no
// display name, the part of the address before the @ stands in for it. A
// display name that is present but empty is left empty.
func (p *pass) indexMailbox(prefix, name string, named bool, address string) {
	name = message.DecodePhrase(name)

	if !named {
		if at := strings.IndexByte(address, '@'); at >= 0 {
			name = address[:at]
		}
	}

	if name != "" {
		p.msg.GenTerms(prefix, name)
	}

	if address != "" {
		p.msg.GenTerms(prefix, address)
	}
}
