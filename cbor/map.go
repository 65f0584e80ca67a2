package cbor

import (
	"io"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
)

// mapItemReader is the document.Reader for Map: Map is the only
// accessor that succeeds.
type mapItemReader struct {
	containerReaderBase
	m *mapReader
}

func newMapReader(src io.Reader, h head) document.Reader {
	m := &mapReader{src: src}
	if h.indefinite() {
		m.indefinite = true
	} else {
		// h.arg is a pair count, per the wire format's standard RFC 8949
		// semantics confirmed against a concrete encode/decode example:
		// a definite map header's value counts key/value pairs, not raw
		// elements, so a 2-pair map carries 4 items after the header.
		m.remainingPairs = int64(h.arg)
	}
	return mapItemReader{containerReaderBase{kind.Map}, m}
}

func (r mapItemReader) Blob() (document.BlobReader, error)   { return nil, mismatch(r.Kind()) }
func (r mapItemReader) Array() (document.ArrayReader, error) { return nil, mismatch(r.Kind()) }
func (r mapItemReader) Map() (document.MapReader, error)     { return r.m, nil }

// mapReader walks the key/value pairs of a definite or indefinite map.
// NextKey and Value must alternate strictly (spec §3.5); this type
// tracks the alternation itself and fails a violation with
// library_misused, whether or not the reader is wrapped by package
// debugcheck.
type mapReader struct {
	src            io.Reader
	indefinite     bool
	remainingPairs int64
	done           bool
	awaitingValue  bool
	closed         bool
}

func (m *mapReader) NextKey() (document.Reader, error) {
	if m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "NextKey called before the previous Value")
	}
	if m.done {
		return nil, io.EOF
	}

	if !m.indefinite {
		if m.remainingPairs == 0 {
			m.done = true
			return nil, io.EOF
		}
		m.remainingPairs--
		key, err := readItem(m.src)
		if err != nil {
			return nil, err
		}
		m.awaitingValue = true
		return key, nil
	}

	key, end, err := readItemOrEnd(m.src)
	if err != nil {
		return nil, err
	}
	if end {
		m.done = true
		return nil, io.EOF
	}
	m.awaitingValue = true
	return key, nil
}

func (m *mapReader) Value() (document.Reader, error) {
	if !m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "Value called without a preceding NextKey")
	}
	m.awaitingValue = false
	return readItem(m.src)
}

// Close skips any unread pairs, including the terminating break of an
// indefinite map, and is idempotent.
func (m *mapReader) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.awaitingValue {
		v, err := m.Value()
		if err != nil {
			return err
		}
		if err := skip(v); err != nil {
			return err
		}
	}
	for {
		key, err := m.NextKey()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := skip(key); err != nil {
			return err
		}
		value, err := m.Value()
		if err != nil {
			return err
		}
		if err := skip(value); err != nil {
			return err
		}
	}
}
