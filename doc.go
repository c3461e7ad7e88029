// Package index turns email messages into search terms.
//
// An Indexer reads a message, either from a file with IndexFile, from any
// io.Reader with IndexReader, or already parsed with IndexMessage, and adds
// terms to a term.Message accumulator:
//
//   - Every mailbox in From is indexed under the "from" prefix, and every
//     mailbox in To, Cc, and Bcc under the "to" prefix. Mailboxes inside
//     groups are indexed as if they were listed directly. A mailbox without a
//     display name uses the part of the address before the "@" as its name.
//
//   - The Subject is indexed under "subject" after any leading "Re:" markers
//     are stripped.
//
//   - The List-Id is indexed under "listid". Both the identifier between the
//     angle brackets and the description before them generate terms.
//
//   - The body is walked part by part. Text is indexed without a prefix after
//     passing through a filter that drops uuencoded blocks. Attachments are
//     never read: they add the "tag:attachment" term and index the filename
//     under "attachment". Nested messages are indexed as part of the message
//     that contains them, and the signature of a multipart/signed message is
//     skipped.
//
// Problems found along the way are logged as warnings and indexing carries on.
// The only error returned is a *FileError, when the file given to IndexFile
// cannot be opened.
//
// Programs should call message.Init() once at startup before indexing.
package index
