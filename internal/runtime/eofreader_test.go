package runtime

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestEOFReaderSignalsOnEOF(t *testing.T) {
	er := newEOFReader(strings.NewReader("requirements.txt\n"))

	buf := make([]byte, 8)
	for {
		_, err := er.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	select {
	case <-er.eof:
	default:
		t.Fatal("eof channel not closed after EOF")
	}

	// Reading past EOF again must not close the channel twice.
	if _, err := er.Read(buf); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestEOFReaderIgnoresOtherErrors(t *testing.T) {
	cause := errors.New("stream reset")
	er := newEOFReader(failingReader{err: cause})

	if _, err := er.Read(make([]byte, 1)); !errors.Is(err, cause) {
		t.Fatalf("err = %v, want %v", err, cause)
	}

	select {
	case <-er.eof:
		t.Fatal("eof channel closed on a non-EOF error")
	default:
	}
}
