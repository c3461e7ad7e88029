package index

import (
	"bytes"
	"fmt"

	"github.com/zostay/go-email-index/filter"
	"github.com/zostay/go-email-index/message"
	"github.com/zostay/go-email-index/term"
)

// signatureIndex is the position of the signature in a multipart/signed.
const signatureIndex = 1

// indexPart indexes the node and everything beneath it.
func (p *pass) indexPart(node message.Node) {
	switch n := node.(type) {
	case nil:
		return
	case *message.Multipart:
		p.indexMultipart(n)
	case *message.MessagePart:
		p.indexMessagePart(n)
	case *message.Leaf:
		if n.IsContainer() {
			p.logger.Warn().
				Str("media_type", n.MediaType).
				Msg("not indexing unexpanded container part")
			p.metrics.warning(reasonMaxDepth)
			return
		}
		if n.IsAttachment() {
			p.indexAttachment(n)
			return
		}
		p.indexText(n)
	default:
		p.logger.Warn().
			Str("node_type", fmt.Sprintf("%T", node)).
			Msg("not indexing unknown mime part")
		p.metrics.warning(reasonUnknownPart)
	}
}

func (p *pass) indexMultipart(mp *message.Multipart) {
	p.metrics.part(kindMultipart)

	signed := mp.Subtype == "signed"
	for i, part := range mp.Parts {
		if signed {
			if i == signatureIndex {
				p.metrics.part(kindSignature)
				continue
			}

			if i > signatureIndex {
				p.logger.Warn().
					Int("part_index", i).
					Msg("unexpected extra parts of multipart/signed, indexing anyway")
				p.metrics.warning(reasonSignedExtra)
			}
		}

		p.indexPart(part)
	}
}

func (p *pass) indexMessagePart(mp *message.MessagePart) {
	if mp.Message == nil {
		p.logger.Warn().Msg("not indexing unreadable embedded message")
		p.metrics.warning(reasonEmbedded)
		return
	}

	p.metrics.part(kindMessage)
	p.indexPart(mp.Message.Root)
}

// indexAttachment tags the message and indexes the filename. The content is
// never indexed.
func (p *pass) indexAttachment(leaf *message.Leaf) {
	p.metrics.part(kindAttachment)
	p.msg.AddTerm(term.PrefixTag, term.TagAttachment)
	p.msg.GenTerms(term.PrefixAttachment, leaf.Filename)
}

// indexText indexes the content of the leaf with any uuencoded data dropped.
func (p *pass) indexText(leaf *message.Leaf) {
	p.metrics.part(kindText)

	buf := &bytes.Buffer{}
	w := filter.NewWriter(buf, filter.NewDiscardUuencode())
	_, _ = w.Write(leaf.Content)
	_ = w.Close()

	p.msg.GenTerms(term.PrefixNone, buf.String())
}
