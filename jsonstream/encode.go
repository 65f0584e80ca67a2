package jsonstream

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
)

// NewWriter returns a document.Writer that prints exactly one value
// as JSON text to sink (spec §4.3/§4.4). JSON text carries no length
// prefixes, so the length/count arguments to WriteBinary, WriteString,
// WriteArray, and WriteMap are accepted for interface symmetry with
// package cbor but do not change the framing: arrays and objects are
// always bracket/brace delimited, and strings are always a single
// quoted run.
//
// By default, writing invalid UTF-8 through a String blob fails with
// ill_formed (spec §4.4); pass WithLenientUTF8 to opt into passing the
// invalid bytes through unchanged instead.
func NewWriter(sink io.Writer, opts ...WriterOption) document.Writer {
	w := writer{sink: sink}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// WriterOption configures NewWriter, the same func(*type) options
// pattern observe.ControlClientOption uses.
type WriterOption func(*writer)

// WithLenientUTF8 passes invalid UTF-8 bytes in String content through
// unchanged instead of failing; spec §4.4 names this as the opt-in
// escape hatch from the strict default.
func WithLenientUTF8() WriterOption {
	return func(w *writer) { w.lenient = true }
}

type writer struct {
	sink    io.Writer
	lenient bool
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

func (w writer) WriteNull() error { return writeBytes(w.sink, []byte("null")) }

// WriteUndefined rejects outright: RFC 8259 has no undefined literal,
// and spec §9's open question resolves the ambiguity explicitly —
// re-encoding Undefined to JSON is ill_formed, the same way a Float
// NaN or infinity is, rather than silently coerced to null.
func (w writer) WriteUndefined() error {
	return goldfisherr.New(goldfisherr.IllFormed, "undefined has no JSON representation")
}

func (w writer) WriteBool(v bool) error {
	if v {
		return writeBytes(w.sink, []byte("true"))
	}
	return writeBytes(w.sink, []byte("false"))
}

func (w writer) WriteUint(v uint64) error {
	return writeBytes(w.sink, strconv.AppendUint(nil, v, 10))
}

func (w writer) WriteInt(v int64) error {
	return writeBytes(w.sink, strconv.AppendInt(nil, v, 10))
}

// WriteFloat rejects NaN and infinities, which RFC 8259 numbers
// cannot represent, and otherwise prints the shortest decimal that
// round-trips to the same float64 (spec §4.4 "a text encoding need
// only round-trip the scalar's value, not its original digit
// sequence").
func (w writer) WriteFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return goldfisherr.New(goldfisherr.IllFormed, "%v has no JSON representation", v)
	}
	return writeBytes(w.sink, strconv.AppendFloat(nil, v, 'g', -1, 64))
}

func (w writer) WriteBinary(length int64) (document.BlobWriter, error) {
	if err := writeBytes(w.sink, []byte{'"'}); err != nil {
		return nil, err
	}
	return &base64BlobWriter{enc: base64.NewEncoder(base64.StdEncoding, w.sink), sink: w.sink}, nil
}

func (w writer) WriteString(length int64) (document.BlobWriter, error) {
	if err := writeBytes(w.sink, []byte{'"'}); err != nil {
		return nil, err
	}
	return &stringBlobWriter{sink: w.sink, lenient: w.lenient}, nil
}

// base64BlobWriter encodes Binary documents as a base64 JSON string
// (encoding/base64 is the idiomatic stdlib choice here: it is a fixed
// universal wire convention, not the "textual number formatting"
// spec §9 puts out of scope for this module's own core, and no
// example in the reference pack carries a base64 dependency to reach
// for instead).
type base64BlobWriter struct {
	enc    io.WriteCloser
	sink   io.Writer
	closed bool
}

func (b *base64BlobWriter) Write(p []byte) (int, error) {
	n, err := b.enc.Write(p)
	if err != nil {
		return n, goldfisherr.Wrap(goldfisherr.IO, "writing base64 blob", err)
	}
	return n, nil
}

func (b *base64BlobWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.enc.Close(); err != nil {
		return goldfisherr.Wrap(goldfisherr.IO, "flushing base64 blob", err)
	}
	return writeBytes(b.sink, []byte{'"'})
}

// stringBlobWriter escapes String document content as it is written.
// Write calls may split a multi-byte UTF-8 rune across chunk
// boundaries (the SAX copy engine's 8 KiB blob buffer does exactly
// this); carry holds a pending incomplete trailing sequence between
// calls.
//
// Invalid UTF-8 fails with ill_formed unless lenient is set (see
// WithLenientUTF8), matching spec §4.4's strict-by-default rule.
type stringBlobWriter struct {
	sink    io.Writer
	carry   []byte
	lenient bool
	closed  bool
}

func (s *stringBlobWriter) Write(p []byte) (int, error) {
	buf := append(s.carry, p...)
	s.carry = s.carry[:0]

	var out []byte
	i := 0
	for i < len(buf) {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(buf[i:]) {
				s.carry = append(s.carry, buf[i:]...)
				break
			}
			if !s.lenient {
				return 0, goldfisherr.New(goldfisherr.IllFormed, "invalid UTF-8 in string content")
			}
			out = append(out, buf[i])
			i++
			continue
		}
		out = appendEscapedRune(out, r)
		i += size
	}
	if err := writeBytes(s.sink, out); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *stringBlobWriter) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if len(s.carry) > 0 {
		if !s.lenient {
			return goldfisherr.New(goldfisherr.IllFormed, "invalid UTF-8 in string content")
		}
		if err := writeBytes(s.sink, s.carry); err != nil {
			return err
		}
		s.carry = nil
	}
	return writeBytes(s.sink, []byte{'"'})
}

// appendEscapedRune appends r to dst, escaping it if RFC 8259 §7
// requires (the control characters, the quote, and the backslash);
// everything else is copied through as UTF-8, matching the canonical
// formatting go-json-experiment/json's AppendQuote produces.
func appendEscapedRune(dst []byte, r rune) []byte {
	switch r {
	case '"':
		return append(dst, '\\', '"')
	case '\\':
		return append(dst, '\\', '\\')
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	}
	if r < 0x20 {
		const hex = "0123456789abcdef"
		return append(dst, '\\', 'u', '0', '0', hex[(r>>4)&0xf], hex[r&0xf])
	}
	return utf8.AppendRune(dst, r)
}

func (w writer) WriteArray(count int64) (document.ArrayWriter, error) {
	if err := writeBytes(w.sink, []byte{'['}); err != nil {
		return nil, err
	}
	return &arrayWriter{sink: w.sink, lenient: w.lenient}, nil
}

type arrayWriter struct {
	sink     io.Writer
	lenient  bool
	wroteAny bool
	closed   bool
}

func (a *arrayWriter) Append() (document.Writer, error) {
	if a.wroteAny {
		if err := writeBytes(a.sink, []byte{','}); err != nil {
			return nil, err
		}
	}
	a.wroteAny = true
	return writer{sink: a.sink, lenient: a.lenient}, nil
}

func (a *arrayWriter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return writeBytes(a.sink, []byte{']'})
}

func (w writer) WriteMap(count int64) (document.MapWriter, error) {
	if err := writeBytes(w.sink, []byte{'{'}); err != nil {
		return nil, err
	}
	return &mapWriter{sink: w.sink, lenient: w.lenient}, nil
}

// mapWriter prints comma-separated "key":value pairs. It checks only
// that AppendKey and AppendValue alternate (a violation fails with
// library_misused). JSON requires string keys; a caller that opens a
// key writer and writes a non-string value through it produces
// invalid JSON text, and this type does not detect that.
type mapWriter struct {
	sink          io.Writer
	lenient       bool
	wroteAny      bool
	awaitingValue bool
	closed        bool
}

func (m *mapWriter) AppendKey() (document.Writer, error) {
	if m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "AppendKey called before the previous AppendValue")
	}
	if m.wroteAny {
		if err := writeBytes(m.sink, []byte{','}); err != nil {
			return nil, err
		}
	}
	m.wroteAny = true
	m.awaitingValue = true
	return writer{sink: m.sink, lenient: m.lenient}, nil
}

func (m *mapWriter) AppendValue() (document.Writer, error) {
	if !m.awaitingValue {
		return nil, goldfisherr.New(goldfisherr.Misused, "AppendValue called without a preceding AppendKey")
	}
	m.awaitingValue = false
	if err := writeBytes(m.sink, []byte{':'}); err != nil {
		return nil, err
	}
	return writer{sink: m.sink, lenient: m.lenient}, nil
}

func (m *mapWriter) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return writeBytes(m.sink, []byte{'}'})
}
