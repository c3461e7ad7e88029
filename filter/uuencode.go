package filter

// Filter states. The states from discardLine onward discard their input.
const (
	stateStart     = 0
	stateBeginLine = 10
	discardLine    = 11
	discardBody    = 12
)

// transition describes one state of the DiscardUuencode state machine. When
// the byte being examined falls within [lo, hi], the machine moves to match,
// otherwise it moves to miss.
type transition struct {
	lo, hi      byte
	match, miss int
}

var uuencodeStates = [...]transition{
	{'b', 'b', 1, stateStart},
	{'e', 'e', 2, stateStart},
	{'g', 'g', 3, stateStart},
	{'i', 'i', 4, stateStart},
	{'n', 'n', 5, stateStart},
	{' ', ' ', 6, stateStart},
	{'0', '7', 7, stateStart},
	{'0', '7', 8, stateStart},
	{'0', '7', 9, stateStart},
	{' ', ' ', stateBeginLine, stateStart},
	{'\n', '\n', discardLine, stateBeginLine},
	{'M', 'M', discardBody, stateStart},
	{' ', '`', discardBody, discardLine},
}

// DiscardUuencode is a StreamFilter that drops uuencoded content.
//
// A uuencoded section starts with a line matching:
//
//	begin [0-7][0-7][0-7] .*
//
// Beginning with the following line, bytes are discarded for as long as each
// line starts with an M and the rest of the line stays within the ASCII range
// from ' ' to '`'. A line that starts with M but then leaves that range sends
// the filter back to waiting for the next M line; only a line that does not
// start with M ends the discarding.
//
// This is a heuristic and not a uuencode parser. Ordinary text can match the
// pattern and be dropped, and the short final line of most uuencoded files
// does not start with M and so is kept.
type DiscardUuencode struct {
	state int
}

// NewDiscardUuencode returns a DiscardUuencode filter in its initial state.
func NewDiscardUuencode() *DiscardUuencode {
	return &DiscardUuencode{}
}

// Filter runs the state machine over in and returns the bytes that were not
// discarded. The returned slice is newly allocated.
func (f *DiscardUuencode) Filter(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for _, c := range in {
		t := uuencodeStates[f.state]

		next := t.miss
		if c >= t.lo && c <= t.hi {
			next = t.match
		}

		if f.state < discardLine {
			out = append(out, c)
		}

		f.state = next
	}
	return out
}

// Complete is the same as Filter. There is never any buffered input to
// flush.
func (f *DiscardUuencode) Complete(in []byte) []byte {
	if len(in) == 0 {
		return []byte{}
	}
	return f.Filter(in)
}

// Reset returns the filter to its initial state.
func (f *DiscardUuencode) Reset() {
	f.state = stateStart
}

// Copy returns a brand new DiscardUuencode. The state of f is not copied.
func (f *DiscardUuencode) Copy() StreamFilter {
	return NewDiscardUuencode()
}

// Discarding returns true if the filter is currently dropping input.
func (f *DiscardUuencode) Discarding() bool {
	return f.state >= discardLine
}

var _ StreamFilter = (*DiscardUuencode)(nil)
