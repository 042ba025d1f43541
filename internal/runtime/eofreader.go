package runtime

import (
	"io"
	"sync"
)

// An [io.Reader] that reports when the underlying stream is exhausted.
//
// The first [io.EOF] closes the eof channel exactly once; concurrent readers
// and later reads observe the channel already closed. Non-EOF errors pass
// through without signalling.
type eofReader struct {
	io.Reader
	once sync.Once
	eof  chan struct{}
}

func newEOFReader(r io.Reader) *eofReader {
	return &eofReader{Reader: r, eof: make(chan struct{})}
}

func (r *eofReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		r.once.Do(func() { close(r.eof) })
	}
	return n, err
}
