// Package header normalizes the header fields that are indexed with special
// rules: the Subject, which is stripped of reply markers, and the List-Id,
// which is split into the list identifier and its description.
package header

import "strings"

// asciiSpace is the set of bytes treated as whitespace between reply markers.
const asciiSpace = " \t\n\v\f\r"

// SkipRe strips any number of leading "Re:" markers from a subject line. The
// match is case-insensitive and whitespace before each marker is skipped, so
// "Re: RE:re: Hello" becomes "Hello". Whitespace at the start of whatever
// remains is removed as well.
func SkipRe(subject string) string {
	s := subject
	for len(s) > 0 {
		s = strings.TrimLeft(s, asciiSpace)
		if len(s) < 3 || !strings.EqualFold(s[:3], "re:") {
			break
		}
		s = s[3:]
	}
	return s
}
