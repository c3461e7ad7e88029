package message

import (
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList parses an address field body. Groups are kept as
// *addr.Group entries.
//
// When the body is not a valid RFC 5322 address list, a best effort is made
// to pull mailboxes out of it anyway (see parseLenientAddressList), because
// an approximate address is still useful to search for.
func ParseAddressList(body string) addr.AddressList {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	al, err := parseStrictAddressList(body)
	if err == nil {
		return al
	}

	return parseLenientAddressList(ungroup(body))
}

// parseStrictAddressList runs the go-addr parser. It panics on some valid
// input, such as a group member without a display name, and that panic is
// returned as an error.
func parseStrictAddressList(body string) (al addr.AddressList, err error) {
	defer func() {
		if r := recover(); r != nil {
			al, err = nil, fmt.Errorf("%w: address list %q: %v", ErrParse, body, r)
		}
	}()

	return addr.ParseEmailAddressList(body)
}

// MailboxName returns the display name of the mailbox as it was written and
// whether there was one at all. An empty quoted name, as in `"" <a@b.com>`,
// is present but empty.
//
// go-addr joins the words of an unquoted display name without spaces, so the
// name is read back out of the original text when that is available.
func MailboxName(mb *addr.Mailbox) (string, bool) {
	orig := mb.OriginalString()
	i := strings.LastIndexByte(orig, '<')
	if i < 0 {
		dn := mb.DisplayName()
		return dn, dn != ""
	}

	return displayPhrase(orig[:i])
}

// displayPhrase returns the words of a display name with quotes and comments
// removed and runs of whitespace collapsed. It reports false when there is
// nothing but whitespace and comments.
func displayPhrase(s string) (string, bool) {
	var b strings.Builder
	present := false
	quoted, escaped, nest := false, false, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			if nest == 0 {
				b.WriteByte(c)
			}
		case c == '\\' && (quoted || nest > 0):
			escaped = true
		case c == '"' && nest == 0:
			quoted = !quoted
			present = true
		case quoted:
			b.WriteByte(c)
		case c == '(':
			nest++
		case c == ')' && nest > 0:
			nest--
		case nest > 0:
		default:
			if !isSpace(c) {
				present = true
			}
			b.WriteByte(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " "), present
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ungroup rewrites group syntax so the members read as a plain list. The
// group name and its colon are dropped and the closing semicolon becomes a
// comma, so "team: a@b.com, c@d.com;" reads as " a@b.com, c@d.com,".
func ungroup(v string) string {
	out := make([]byte, 0, len(v))
	start := 0
	quoted, escaped, angle, nest := false, false, false, 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && (quoted || nest > 0):
			escaped = true
		case c == '"' && nest == 0:
			quoted = !quoted
		case quoted:
		case c == '(':
			nest++
		case c == ')' && nest > 0:
			nest--
		case nest > 0:
		case c == '<':
			angle = true
		case c == '>':
			angle = false
		case angle:
		case c == ':':
			out = out[:start]
			continue
		case c == ';':
			c = ','
		}

		out = append(out, c)
		if c == ',' && !quoted && !angle && nest == 0 {
			start = len(out)
		}
	}

	return string(out)
}

// extractComments splits s into the text outside and inside of parentheses.
func extractComments(s string) (string, string) {
	var clean, comment strings.Builder
	nestLevel := 0
	for _, c := range s {
		switch {
		case c == '(':
			nestLevel++
			if nestLevel > 1 {
				comment.WriteRune(c)
			}
		case c == ')':
			nestLevel--
			if nestLevel < 0 {
				nestLevel = 0
				clean.WriteRune(c)
			} else if nestLevel > 0 {
				comment.WriteRune(c)
			}
		case nestLevel > 0:
			comment.WriteRune(c)
		default:
			clean.WriteRune(c)
		}
	}

	return clean.String(), comment.String()
}

// parseLenientAddressList is used when strict parsing fails. It works as
// follows:
//
//  1. Split the string up by commas.
//  2. Strip comments out of each piece and hold on to them.
//  3. The last word of each piece is the address, angle brackets removed.
//  4. Any words before that are the display name, quotes removed. A piece
//     with no other words is a bare *addr.AddrSpec.
//
// Groups are never produced. Run the input through ungroup first so group
// members are still found.
func parseLenientAddressList(v string) addr.AddressList {
	pieces := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(pieces))
	for _, orig := range pieces {
		mb, com := extractComments(orig)
		com = strings.TrimSpace(com)

		words := strings.Fields(mb)
		if len(words) == 0 {
			continue
		}

		email := strings.Trim(words[len(words)-1], "<>")
		if email == "" {
			continue
		}

		var addrSpec *addr.AddrSpec
		if i := strings.LastIndexByte(email, '@'); i > -1 {
			addrSpec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
		} else {
			addrSpec = addr.NewAddrSpecParsed(email, "", email)
		}

		if len(words) == 1 {
			as = append(as, addrSpec)
			continue
		}

		dn := strings.Trim(strings.Join(words[:len(words)-1], " "), `"`)
		mailbox, err := addr.NewMailboxParsed(dn, addrSpec, com, orig)
		if err != nil {
			mailbox, err = addr.NewMailboxParsed(dn, addrSpec, "", orig)
			if err != nil {
				continue
			}
		}

		as = append(as, mailbox)
	}

	return as
}
