package utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCounter(t *testing.T) {
	rc := NewReadCounter(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	assert.Same(t, rc, NewReadCounter(rc))

	var buf [2]byte
	_, err := io.ReadFull(rc, buf[:])
	require.NoError(t, err)
	assert.EqualValues(t, 2, rc.Pos())

	require.NoError(t, rc.Skip(2))
	assert.EqualValues(t, 4, rc.Pos())

	assert.Equal(t, io.ErrUnexpectedEOF, rc.Skip(3))
}

func TestWriteCounter(t *testing.T) {
	var buf bytes.Buffer
	wc := NewWriteCounter(&buf)
	assert.Same(t, wc, NewWriteCounter(wc))

	_, err := wc.Write(AsBytes(uint32(0x01020304)))
	require.NoError(t, err)
	assert.EqualValues(t, 4, wc.Pos())
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestDecodeText(t *testing.T) {
	s, err := DecodeText([]byte("plain ascii"))
	require.NoError(t, err)
	assert.Equal(t, "plain ascii", s)

	s, err = DecodeText([]byte{'n', 0xe4, 'h'})
	require.NoError(t, err)
	assert.Equal(t, "näh", s)
}
