package message

import (
	"mime"
	"strings"

	"github.com/zostay/go-email-index/internal/charset"
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// DecodePhrase decodes any RFC 2047 encoded words in s. If decoding fails, s
// is returned unchanged.
func DecodePhrase(s string) string {
	if !strings.Contains(s, "=?") {
		return s
	}

	d, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return d
}
