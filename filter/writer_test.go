package filter_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-index/filter"
)

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestWriter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	w := filter.NewWriter(buf, filter.NewDiscardUuencode())

	n, err := io.Copy(w, strings.NewReader(uuencodedMsg))
	require.NoError(t, err)
	assert.Equal(t, int64(len(uuencodedMsg)), n)

	require.NoError(t, w.Close())
	assert.Equal(t, uuencodedMsgFiltered, buf.String())
}

func TestWriter_CloseClosesWrapped(t *testing.T) {
	t.Parallel()

	rec := &closeRecorder{}
	w := filter.NewWriter(rec, filter.NewDiscardUuencode())

	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.True(t, rec.closed)
	assert.Equal(t, "hello\n", rec.String())
}

func TestWriter_WriteError(t *testing.T) {
	t.Parallel()

	w := filter.NewWriter(failWriter{}, filter.NewDiscardUuencode())

	// the filter has already consumed the input, so all of it is counted
	n, err := w.Write([]byte("hello"))
	assert.ErrorIs(t, err, errWrite)
	assert.Equal(t, 5, n)

	// nothing reaches the failing writer while discarding
	f := filter.NewDiscardUuencode()
	f.Filter([]byte("begin 644 x\n"))
	w = filter.NewWriter(failWriter{}, f)
	n, err = w.Write([]byte("MABC"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
