package jsonstream

import (
	"io"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// mapItemReader is the document.Reader for a JSON object: Map is the
// only accessor that succeeds.
type mapItemReader struct {
	containerReaderBase
	m *mapReader
}

// newMapReader returns a document for a JSON object whose opening
// brace has already been consumed.
func newMapReader(src stream.PeekSource) document.Reader {
	return mapItemReader{containerReaderBase{kind.Map}, &mapReader{src: src}}
}

func (r mapItemReader) Blob() (document.BlobReader, error)   { return nil, mismatch(r.Kind()) }
func (r mapItemReader) Array() (document.ArrayReader, error) { return nil, mismatch(r.Kind()) }
func (r mapItemReader) Map() (document.MapReader, error)     { return r.m, nil }

// mapReader walks a JSON object's key/value pairs. JSON restricts
// object keys to strings (RFC 8259 §4); NextKey enforces that by only
// ever dispatching into readValue at a position where it has already
// checked the next byte is a quote.
type mapReader struct {
	src           stream.PeekSource
	started       bool
	done          bool
	awaitingValue bool
	closed        bool
}

func (m *mapReader) NextKey() (document.Reader, error) {
	if m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "NextKey called before the previous Value")
	}
	if m.done {
		return nil, io.EOF
	}
	if err := skipSpace(m.src); err != nil {
		return nil, err
	}

	if !m.started {
		m.started = true
		b, err := peek(m.src)
		if err != nil {
			return nil, err
		}
		if b == '}' {
			_ = consumeByte(m.src)
			m.done = true
			return nil, io.EOF
		}
		return m.readKey()
	}

	b, err := peek(m.src)
	if err != nil {
		return nil, err
	}
	switch b {
	case '}':
		_ = consumeByte(m.src)
		m.done = true
		return nil, io.EOF
	case ',':
		if err := consumeByte(m.src); err != nil {
			return nil, err
		}
		if err := skipSpace(m.src); err != nil {
			return nil, err
		}
		return m.readKey()
	default:
		return nil, goldfisherr.New(goldfisherr.IllFormed, "expected ',' or '}', got %q", b)
	}
}

func (m *mapReader) readKey() (document.Reader, error) {
	b, err := peek(m.src)
	if err != nil {
		return nil, err
	}
	if b != '"' {
		return nil, goldfisherr.New(goldfisherr.IllFormed, "object key must be a string, got %q", b)
	}
	key, err := readValue(m.src)
	if err != nil {
		return nil, err
	}
	m.awaitingValue = true
	return key, nil
}

func (m *mapReader) Value() (document.Reader, error) {
	if !m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "Value called without a preceding NextKey")
	}
	m.awaitingValue = false
	if err := skipSpace(m.src); err != nil {
		return nil, err
	}
	b, err := peek(m.src)
	if err != nil {
		return nil, err
	}
	if b != ':' {
		return nil, goldfisherr.New(goldfisherr.IllFormed, "expected ':' after object key, got %q", b)
	}
	if err := consumeByte(m.src); err != nil {
		return nil, err
	}
	if err := skipSpace(m.src); err != nil {
		return nil, err
	}
	return readValue(m.src)
}

// Close skips any unread pairs, including the closing brace, and is
// idempotent.
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
