package cbor

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
)

// NewWriter returns a document.Writer that encodes exactly one item to
// sink, following the same minimal-width number encoding and
// definite/indefinite framing choices the reader accepts (spec §4.4).
func NewWriter(sink io.Writer) document.Writer {
	return writer{sink}
}

type writer struct {
	sink io.Writer
}

func writeBytes(sink io.Writer, p []byte) error {
	if _, err := sink.Write(p); err != nil {
		return goldfisherr.Wrap(goldfisherr.IO, "writing to sink", err)
	}
	return nil
}

func (w writer) WriteValue(v document.Value) error {
	switch v.Kind {
	case kind.Null:
		return w.WriteNull()
	case kind.Undefined:
		return w.WriteUndefined()
	case kind.Bool:
		return w.WriteBool(v.Bool)
	case kind.Uint:
		return w.WriteUint(v.Uint)
	case kind.Int:
		return w.WriteInt(v.Int)
	case kind.Float:
		return w.WriteFloat(v.Float)
	default:
		return goldfisherr.New(goldfisherr.KindMismatch, "%s is not a scalar kind", v.Kind)
	}
}

func (w writer) WriteNull() error      { return writeBytes(w.sink, appendHead(nil, majorSimple, uint64(aiNull))) }
func (w writer) WriteUndefined() error { return writeBytes(w.sink, appendHead(nil, majorSimple, uint64(aiUndefined))) }

func (w writer) WriteBool(v bool) error {
	ai := aiFalse
	if v {
		ai = aiTrue
	}
	return writeBytes(w.sink, appendHead(nil, majorSimple, uint64(ai)))
}

func (w writer) WriteUint(v uint64) error {
	return writeBytes(w.sink, appendHead(nil, majorUint, v))
}

func (w writer) WriteInt(v int64) error {
	// Int carries a negative magnitude (spec §3.1); major type 1's
	// argument is -1-v, the RFC 8949 encoding of a negative integer.
	magnitude := uint64(-1 - v)
	return writeBytes(w.sink, appendHead(nil, majorInt, magnitude))
}

func (w writer) WriteFloat(v float64) error {
	// Always the full 8-byte width: choosing a narrower float encoding
	// when the value happens to round-trip is a size optimization the
	// core format doesn't need to make (spec §4.4 leaves float width
	// unconstrained beyond round-tripping the value exactly).
	dst := append([]byte{majorSimple<<5 | aiFloat64}, make([]byte, 8)...)
	binary.BigEndian.PutUint64(dst[1:], math.Float64bits(v))
	return writeBytes(w.sink, dst)
}

func (w writer) WriteBinary(length int64) (document.BlobWriter, error) {
	return w.openBlob(majorBinary, kind.Binary, length)
}

func (w writer) WriteString(length int64) (document.BlobWriter, error) {
	return w.openBlob(majorString, kind.String, length)
}

func (w writer) openBlob(major byte, k kind.Kind, length int64) (document.BlobWriter, error) {
	if length == document.Indefinite {
		if err := writeBytes(w.sink, appendIndefiniteHead(nil, major)); err != nil {
			return nil, err
		}
		return &indefiniteBlobWriter{sink: w.sink, major: major}, nil
	}
	if err := writeBytes(w.sink, appendHead(nil, major, uint64(length))); err != nil {
		return nil, err
	}
	return &definiteBlobWriter{sink: w.sink, kindVal: k, remaining: length}, nil
}

// definiteBlobWriter enforces that exactly the declared length is
// written before Close (spec §4.4 "a definite length commits the
// writer to producing exactly that many bytes").
type definiteBlobWriter struct {
	sink      io.Writer
	kindVal   kind.Kind
	remaining int64
	closed    bool
}

func (b *definiteBlobWriter) Write(p []byte) (int, error) {
	if int64(len(p)) > b.remaining {
		return 0, goldfisherr.New(goldfisherr.IllFormed, "write exceeds declared %s length", b.kindVal)
	}
	if err := writeBytes(b.sink, p); err != nil {
		return 0, err
	}
	b.remaining -= int64(len(p))
	return len(p), nil
}

func (b *definiteBlobWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.remaining != 0 {
		return goldfisherr.New(goldfisherr.IllFormed, "%s closed %d bytes short of its declared length", b.kindVal, b.remaining)
	}
	return nil
}

// indefiniteBlobWriter frames every Write call as its own definite
// chunk, terminated by a break byte on Close (spec §4.4, §6.3).
type indefiniteBlobWriter struct {
	sink   io.Writer
	major  byte
	closed bool
}

func (b *indefiniteBlobWriter) Write(p []byte) (int, error) {
	if err := writeBytes(b.sink, appendHead(nil, b.major, uint64(len(p)))); err != nil {
		return 0, err
	}
	if err := writeBytes(b.sink, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (b *indefiniteBlobWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return writeBytes(b.sink, []byte{breakByte})
}

func (w writer) WriteArray(count int64) (document.ArrayWriter, error) {
	if count == document.Indefinite {
		if err := writeBytes(w.sink, appendIndefiniteHead(nil, majorArray)); err != nil {
			return nil, err
		}
		return &arrayWriter{sink: w.sink, indefinite: true}, nil
	}
	if err := writeBytes(w.sink, appendHead(nil, majorArray, uint64(count))); err != nil {
		return nil, err
	}
	return &arrayWriter{sink: w.sink, remaining: count}, nil
}

type arrayWriter struct {
	sink       io.Writer
	indefinite bool
	remaining  int64
	closed     bool
}

func (a *arrayWriter) Append() (document.Writer, error) {
	if !a.indefinite {
		if a.remaining == 0 {
			return nil, goldfisherr.New(goldfisherr.IllFormed, "array append exceeds its declared count")
		}
		a.remaining--
	}
	return writer{a.sink}, nil
}

func (a *arrayWriter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.indefinite {
		return writeBytes(a.sink, []byte{breakByte})
	}
	if a.remaining != 0 {
		return goldfisherr.New(goldfisherr.IllFormed, "array closed %d elements short of its declared count", a.remaining)
	}
	return nil
}

func (w writer) WriteMap(count int64) (document.MapWriter, error) {
	if count == document.Indefinite {
		if err := writeBytes(w.sink, appendIndefiniteHead(nil, majorMap)); err != nil {
			return nil, err
		}
		return &mapWriter{sink: w.sink, indefinite: true}, nil
	}
	if err := writeBytes(w.sink, appendHead(nil, majorMap, uint64(count))); err != nil {
		return nil, err
	}
	return &mapWriter{sink: w.sink, remainingPairs: count}, nil
}

// mapWriter counts declared pairs the same way mapReader counts them
// on the read side: a definite header's count is pairs, not elements.
type mapWriter struct {
	sink           io.Writer
	indefinite     bool
	remainingPairs int64
	awaitingValue  bool
	closed         bool
}

func (m *mapWriter) AppendKey() (document.Writer, error) {
	if m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "AppendKey called before the previous AppendValue")
	}
	if !m.indefinite {
		if m.remainingPairs == 0 {
			return nil, goldfisherr.New(goldfisherr.IllFormed, "map append exceeds its declared pair count")
		}
		m.remainingPairs--
	}
	m.awaitingValue = true
	return writer{m.sink}, nil
}

func (m *mapWriter) AppendValue() (document.Writer, error) {
	if !m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "AppendValue called without a preceding AppendKey")
	}
	m.awaitingValue = false
	return writer{m.sink}, nil
}

func (m *mapWriter) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.indefinite {
		return writeBytes(m.sink, []byte{breakByte})
	}
	if m.remainingPairs != 0 {
		return goldfisherr.New(goldfisherr.IllFormed, "map closed %d pairs short of its declared count", m.remainingPairs)
	}
	return nil
}
