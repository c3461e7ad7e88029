package filter

// StreamFilter is a stateful byte transducer.
type StreamFilter interface {
	// Filter consumes the given bytes and returns the bytes to emit. State
	// carries over to the next call.
	Filter(in []byte) []byte

	// Complete is called with the final chunk of input (which may be empty).
	// It returns whatever remains to be emitted.
	Complete(in []byte) []byte

	// Reset returns the filter to its initial state.
	Reset()

	// Copy returns a new filter of the same kind in its initial state. It
	// does not carry over the state of the filter it was made from.
	Copy() StreamFilter
}
