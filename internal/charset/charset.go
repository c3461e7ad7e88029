// Package charset converts text in the character sets found in email into
// UTF-8. It loads every encoding known to golang.org/x/text/encoding/ianaindex,
// which makes binaries larger but lets the indexer read pretty much any
// charset it might encounter in the wild.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnsupported is returned when a charset name is recognized, but no decoder
// is available for it.
var ErrUnsupported = errors.New("unsupported charset")

// Lookup finds the encoding for the given charset name. MIME names are tried
// first and then IANA names.
func Lookup(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))

	e, err := ianaindex.MIME.Encoding(name)
	if err != nil || e == nil {
		e, err = ianaindex.IANA.Encoding(name)
	}

	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, charset)
	}

	return e, nil
}

// Reader has the signature of mime.WordDecoder.CharsetReader. It returns an
// io.Reader that converts input from the given charset into UTF-8. UTF-8 and
// US-ASCII input is returned unchanged.
func Reader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	}

	e, err := Lookup(charset)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(input, e.NewDecoder()), nil
}
