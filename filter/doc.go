// Package filter contains streaming byte filters that are applied to message
// content before it is handed to the term generator. A StreamFilter consumes
// input a chunk at a time and keeps whatever state it needs between chunks,
// so the same content split at any point produces the same output.
//
// The Writer wraps an io.Writer with a StreamFilter so the filter may be used
// anywhere an io.Writer is expected, such as the destination of io.Copy().
package filter
