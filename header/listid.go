package header

import "strings"

// ParseListID splits a List-Id header body into the list identifier and the
// description that precedes it.
//
// Per RFC 2919 the identifier is at the end of the header between angle
// brackets. The last '<' in the header is taken as the start and the last '>'
// after that as the end. If either is missing or nothing lies between them,
// ok is false and the header should be ignored.
//
// The description is returned as-is. It may contain RFC 2047 encoded words
// and surrounding whitespace.
func ParseListID(h string) (id, description string, ok bool) {
	begin := strings.LastIndexByte(h, '<')
	if begin < 0 {
		return "", "", false
	}

	end := strings.LastIndexByte(h[begin:], '>')
	if end < 2 {
		return "", "", false
	}
	end += begin

	return h[begin+1 : end], h[:begin], true
}
