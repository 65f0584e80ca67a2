// Package stream defines the byte-stream contract that GoldFish's
// codecs pull from and push to. Per spec §1 the raw byte-stream
// abstraction is out of scope for the core — sources and sinks are
// external collaborators, interface only. This package is that
// interface boundary plus the handful of stdlib-only adapters every
// caller needs (a byte slice, an *os.File, a plain io.Reader/Writer);
// adapters that wrap a third-party transport live in package streamio
// instead, to keep this package dependency-free.
package stream

import (
	"bufio"
	"io"
)

// Source pulls bytes. Read follows the io.Reader contract (spec §6.1):
// a short read (n < len(p)) does not by itself mean end-of-stream;
// end-of-stream is reported with io.EOF, and every call after it
// returns (0, io.EOF).
type Source interface {
	io.Reader
}

// Peeker exposes a single-byte lookahead without consuming it. Only
// the JSON reader needs this; the binary reader does not (spec §6.1).
type Peeker interface {
	// Peek returns the next byte without consuming it, or io.EOF if
	// the source is exhausted.
	Peek() (byte, error)
}

// PeekSource is a Source that also supports one-byte lookahead.
type PeekSource interface {
	Source
	Peeker
}

// ForwardSeeker advances a Source by discarding up to n bytes,
// returning the number actually discarded (spec §6.1: actual < n only
// at end-of-stream; no backward seek exists).
type ForwardSeeker interface {
	SeekForward(n int64) (int64, error)
}

// Sink pushes bytes. Write must retry partial writes to completion or
// fail (spec §6.2); io.Writer already guarantees this for conforming
// implementations, so Sink is exactly io.Writer plus Flush.
type Sink interface {
	io.Writer
	Flush() error
}

// bufPeekSource adapts any io.Reader into a PeekSource using
// bufio.Reader's one-byte pushback — the stdlib already solves
// one-byte lookahead, so there is no third-party dependency to reach
// for here (see DESIGN.md).
type bufPeekSource struct {
	r *bufio.Reader
}

// NewPeekSource wraps r so it satisfies PeekSource. If r already
// implements PeekSource it is returned unchanged.
func NewPeekSource(r io.Reader) PeekSource {
	if p, ok := r.(PeekSource); ok {
		return p
	}
	return &bufPeekSource{r: bufio.NewReader(r)}
}

func (b *bufPeekSource) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *bufPeekSource) Peek() (byte, error) {
	buf, err := b.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b *bufPeekSource) SeekForward(n int64) (int64, error) {
	discarded, err := b.r.Discard(int(n))
	if err != nil && err != io.EOF {
		return int64(discarded), err
	}
	return int64(discarded), nil
}

// writerSink adapts a plain io.Writer into a Sink. Flush is a no-op
// unless w also implements an explicit Flush method (e.g. *bufio.Writer).
type writerSink struct {
	w io.Writer
}

// NewSink wraps w so it satisfies Sink. If w already implements Sink
// it is returned unchanged.
func NewSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return &writerSink{w: w}
}

func (s *writerSink) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *writerSink) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// SeekForward discards up to n bytes from r, the generic fallback for
// sources that are not ForwardSeekers: read-and-discard through a
// scratch buffer. Returns the number of bytes actually discarded.
func SeekForward(r io.Reader, n int64) (int64, error) {
	if fs, ok := r.(ForwardSeeker); ok {
		return fs.SeekForward(n)
	}
	var discarded int64
	var scratch [4096]byte
	for discarded < n {
		want := n - discarded
		if want > int64(len(scratch)) {
			want = int64(len(scratch))
		}
		k, err := r.Read(scratch[:want])
		discarded += int64(k)
		if err != nil {
			if err == io.EOF {
				return discarded, nil
			}
			return discarded, err
		}
		if k == 0 {
			break
		}
	}
	return discarded, nil
}
