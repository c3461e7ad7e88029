package filter

import "io"

// Writer is an io.WriteCloser that passes every byte written through a
// StreamFilter before writing it on to the wrapped io.Writer.
type Writer struct {
	io.Writer
	filter StreamFilter
}

// NewWriter returns a Writer that filters bytes with f and writes the result
// to w. You must call Close() when you are finished writing so the filter can
// emit any remaining bytes.
func NewWriter(w io.Writer, f StreamFilter) *Writer {
	return &Writer{w, f}
}

// Write filters p and writes the output to the wrapped io.Writer. It always
// reports all of p as written, even when the filter discarded some or all of
// it. The filter has consumed p by the time the wrapped writer is called, so
// that is also true when the wrapped writer fails. A Writer that has returned
// an error must not be used again.
func (w *Writer) Write(p []byte) (int, error) {
	out := w.filter.Filter(p)
	if len(out) > 0 {
		if _, err := w.Writer.Write(out); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Close completes the filter, writes anything it had left over, and then
// closes the wrapped io.Writer if it is an io.Closer.
func (w *Writer) Close() error {
	out := w.filter.Complete(nil)
	if len(out) > 0 {
		if _, err := w.Writer.Write(out); err != nil {
			return err
		}
	}

	if c, isCloser := w.Writer.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}
