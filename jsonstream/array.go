package jsonstream

import (
	"io"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// arrayItemReader is the document.Reader for a JSON array: Array is
// the only accessor that succeeds.
type arrayItemReader struct {
	containerReaderBase
	array *arrayReader
}

// newArrayReader returns a document for a JSON array whose opening
// bracket has already been consumed.
func newArrayReader(src stream.PeekSource) document.Reader {
	return arrayItemReader{containerReaderBase{kind.Array}, &arrayReader{src: src}}
}

func (r arrayItemReader) Blob() (document.BlobReader, error)   { return nil, mismatch(r.Kind()) }
func (r arrayItemReader) Array() (document.ArrayReader, error) { return r.array, nil }
func (r arrayItemReader) Map() (document.MapReader, error)     { return nil, mismatch(r.Kind()) }

// arrayReader walks a JSON array's elements (spec §3.4, §4.3). It
// trusts that the caller fully consumes or closes each element before
// calling Next again, the same assumption package cbor's arrayReader
// makes.
type arrayReader struct {
	src     stream.PeekSource
	started bool
	done    bool
	closed  bool
}

func (a *arrayReader) Next() (document.Reader, error) {
	if a.done {
		return nil, io.EOF
	}
	if err := skipSpace(a.src); err != nil {
		return nil, err
	}

	if !a.started {
		a.started = true
		b, err := peek(a.src)
		if err != nil {
			return nil, err
		}
		if b == ']' {
			_ = consumeByte(a.src)
			a.done = true
			return nil, io.EOF
		}
		return readValue(a.src)
	}

	b, err := peek(a.src)
	if err != nil {
		return nil, err
	}
	switch b {
	case ']':
		_ = consumeByte(a.src)
		a.done = true
		return nil, io.EOF
	case ',':
		if err := consumeByte(a.src); err != nil {
			return nil, err
		}
		if err := skipSpace(a.src); err != nil {
			return nil, err
		}
		return readValue(a.src)
	default:
		return nil, goldfisherr.New(goldfisherr.IllFormed, "expected ',' or ']', got %q", b)
	}
}

// Close skips any unread elements, including the closing bracket, and
// is idempotent.
func (a *arrayReader) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	for {
		elem, err := a.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := skip(elem); err != nil {
			return err
		}
	}
}
