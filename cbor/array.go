package cbor

import (
	"io"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/kind"
)

// arrayItemReader is the document.Reader for Array: Array is the only
// accessor that succeeds.
type arrayItemReader struct {
	containerReaderBase
	array *arrayReader
}

func newArrayReader(src io.Reader, h head) document.Reader {
	a := &arrayReader{src: src}
	if h.indefinite() {
		a.indefinite = true
	} else {
		a.remaining = int64(h.arg)
	}
	return arrayItemReader{containerReaderBase{kind.Array}, a}
}

func (r arrayItemReader) Blob() (document.BlobReader, error) { return nil, mismatch(r.Kind()) }
func (r arrayItemReader) Array() (document.ArrayReader, error) { return r.array, nil }
func (r arrayItemReader) Map() (document.MapReader, error)     { return nil, mismatch(r.Kind()) }

// arrayReader walks the elements of a definite or indefinite array
// (spec §3.4, §4.2). It trusts that the caller fully consumes or
// closes each element returned by Next before calling Next again — the
// same assumption the original's sub-reader destructors make; a
// caller that violates it is caught by package debugcheck, not here.
type arrayReader struct {
	src        io.Reader
	indefinite bool
	remaining  int64
	done       bool
	closed     bool
}

func (a *arrayReader) Next() (document.Reader, error) {
	if a.done {
		return nil, io.EOF
	}
	if !a.indefinite {
		if a.remaining == 0 {
			a.done = true
			return nil, io.EOF
		}
		a.remaining--
		return readItem(a.src)
	}

	item, end, err := readItemOrEnd(a.src)
	if err != nil {
		return nil, err
	}
	if end {
		a.done = true
		return nil, io.EOF
	}
	return item, nil
}

// Close skips any unread elements, including the terminating break of
// an indefinite array, and is idempotent.
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

// skip fully discards a document by driving it to completion the same
// way Copy would, without writing anywhere.
func skip(r document.Reader) error {
	switch k := r.Kind(); {
	case k.IsScalar():
		_, err := r.Scalar()
		return err
	case k.IsBlob():
		b, err := r.Blob()
		if err != nil {
			return err
		}
		return b.Close()
	case k == kind.Array:
		a, err := r.Array()
		if err != nil {
			return err
		}
		return a.Close()
	case k == kind.Map:
		m, err := r.Map()
		if err != nil {
			return err
		}
		return m.Close()
	default:
		return nil
	}
}
