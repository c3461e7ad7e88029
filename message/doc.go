// Package message turns raw email into the typed tree the indexer walks.
//
// Parsing is done by github.com/emersion/go-message, which takes care of the
// header syntax, multipart boundaries, and Content-transfer-encoding. This
// package arranges the result into a tree of Node values:
//
//   - *Multipart holds the sub-parts of a multipart/* part in order.
//   - *MessagePart holds a message/rfc822 part, already parsed into a
//     *Message of its own.
//   - *Leaf holds any other part with its content fully decoded.
//
// The header accessors on *Message return address fields as
// github.com/zostay/go-addr address lists, which keep RFC 5322 groups intact
// rather than flattening them.
//
// Call Init() once when your program starts to install the character set
// support used for decoding part content.
package message
