package utils

import (
	"io"
)

// ReadCounter keeps track of how many bytes were consumed from
// the underlying reader, so decoders can report failure offsets
type ReadCounter struct {
	r   io.Reader
	pos int64
}

func NewReadCounter(r io.Reader) *ReadCounter {
	if rc, ok := r.(*ReadCounter); ok {
		return rc
	}
	return &ReadCounter{r: r}
}

func (rc *ReadCounter) Read(p []byte) (n int, err error) {
	n, err = rc.r.Read(p)
	rc.pos += int64(n)
	return n, err
}

func (rc *ReadCounter) Pos() int64 {
	return rc.pos
}

// Skip discards exactly amount bytes
func (rc *ReadCounter) Skip(amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, rc, int64(amount))
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// WriteCounter mirrors ReadCounter for encoders
type WriteCounter struct {
	w   io.Writer
	pos int64
}

func NewWriteCounter(w io.Writer) *WriteCounter {
	if wc, ok := w.(*WriteCounter); ok {
		return wc
	}
	return &WriteCounter{w: w}
}

func (wc *WriteCounter) Write(p []byte) (n int, err error) {
	n, err = wc.w.Write(p)
	wc.pos += int64(n)
	return n, err
}

func (wc *WriteCounter) Pos() int64 {
	return wc.pos
}
