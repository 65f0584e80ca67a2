package jsonstream

import (
	"io"
	"math"
	"strconv"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// NewReader parses one JSON value from src. Scalars are decoded
// eagerly, since a JSON number or literal is always small; strings,
// arrays, and objects return handles that pull further bytes from src
// lazily as the caller traverses them (spec §3.3/§3.4).
func NewReader(src stream.PeekSource) (document.Reader, error) {
	if err := skipSpace(src); err != nil {
		return nil, err
	}
	return readValue(src)
}

func readValue(src stream.PeekSource) (document.Reader, error) {
	b, err := peek(src)
	if err != nil {
		return nil, err
	}
	switch {
	case b == 'n':
		if err := consumeLiteral(src, "null"); err != nil {
			return nil, err
		}
		return scalarReader{document.Null()}, nil
	case b == 't':
		if err := consumeLiteral(src, "true"); err != nil {
			return nil, err
		}
		return scalarReader{document.OfBool(true)}, nil
	case b == 'f':
		if err := consumeLiteral(src, "false"); err != nil {
			return nil, err
		}
		return scalarReader{document.OfBool(false)}, nil
	case b == '"':
		return newStringReader(src)
	case b == '[':
		if err := consumeByte(src); err != nil {
			return nil, err
		}
		return newArrayReader(src), nil
	case b == '{':
		if err := consumeByte(src); err != nil {
			return nil, err
		}
		return newMapReader(src), nil
	case b == '-' || isDigit(b):
		return readNumber(src)
	default:
		return nil, goldfisherr.New(goldfisherr.IllFormed, "unexpected character %q", b)
	}
}

// readNumber lexes one JSON number (RFC 8259 §6) and infers its kind:
// an integer literal that fits a uint64 becomes Uint, one with a '-'
// that fits a negated uint64 into int64's range becomes Int, and
// anything with a fractional part/exponent, or an integer magnitude
// too large for either, becomes Float (spec §4.3 "number kind is
// inferred from shape and magnitude, not declared").
func readNumber(src stream.PeekSource) (document.Reader, error) {
	var raw []byte
	hasFracOrExp := false

	// peekOrStop returns the next byte and true, or false (no error) at
	// a clean end of source: a number is allowed to be the very last
	// thing in the input.
	peekOrStop := func() (byte, bool, error) {
		b, err := src.Peek()
		if err != nil {
			if err == io.EOF {
				return 0, false, nil
			}
			return 0, false, goldfisherr.Wrap(goldfisherr.IO, "reading source", err)
		}
		return b, true, nil
	}

	// take consumes and records the next byte if it satisfies pred.
	take := func(pred func(byte) bool) (bool, error) {
		b, ok, err := peekOrStop()
		if err != nil || !ok || !pred(b) {
			return false, err
		}
		raw = append(raw, b)
		return true, consumeByte(src)
	}

	takeWhile := func(pred func(byte) bool) error {
		for {
			ok, err := take(pred)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}

	if _, err := take(func(b byte) bool { return b == '-' }); err != nil {
		return nil, err
	}
	if err := takeWhile(isDigit); err != nil {
		return nil, err
	}
	if ok, err := take(func(b byte) bool { return b == '.' }); err != nil {
		return nil, err
	} else if ok {
		hasFracOrExp = true
		if err := takeWhile(isDigit); err != nil {
			return nil, err
		}
	}
	if ok, err := take(func(b byte) bool { return b == 'e' || b == 'E' }); err != nil {
		return nil, err
	} else if ok {
		hasFracOrExp = true
		if _, err := take(func(b byte) bool { return b == '+' || b == '-' }); err != nil {
			return nil, err
		}
		if err := takeWhile(isDigit); err != nil {
			return nil, err
		}
	}

	v, err := parseNumber(raw, hasFracOrExp)
	if err != nil {
		return nil, err
	}
	return scalarReader{v}, nil
}

func parseNumber(raw []byte, hasFracOrExp bool) (document.Value, error) {
	s := string(raw)
	if !hasFracOrExp {
		if s != "" && s[0] == '-' {
			if u, err := strconv.ParseUint(s[1:], 10, 64); err == nil {
				if u <= 1<<63 {
					v := int64(-1)
					if u == 1<<63 {
						v = math.MinInt64
					} else {
						v = -int64(u)
					}
					return document.OfInt(v), nil
				}
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return document.OfUint(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return document.Value{}, goldfisherr.New(goldfisherr.IllFormed, "invalid number %q", s)
	}
	return document.OfFloat(f), nil
}

// scalarReader is the document.Reader for an eagerly-decoded scalar.
type scalarReader struct {
	value document.Value
}

func (s scalarReader) Kind() kind.Kind                      { return s.value.Kind }
func (s scalarReader) Scalar() (document.Value, error)       { return s.value, nil }
func (s scalarReader) Blob() (document.BlobReader, error)    { return nil, mismatch(s.Kind()) }
func (s scalarReader) Array() (document.ArrayReader, error)  { return nil, mismatch(s.Kind()) }
func (s scalarReader) Map() (document.MapReader, error)      { return nil, mismatch(s.Kind()) }

func mismatch(k kind.Kind) error {
	return goldfisherr.New(goldfisherr.KindMismatch, "document is %s", k)
}

// containerReaderBase implements the Scalar dispatch shared by the
// string/array/map item readers, each of which is only valid for its
// own accessor.
type containerReaderBase struct {
	k kind.Kind
}

func (c containerReaderBase) Kind() kind.Kind { return c.k }
func (c containerReaderBase) Scalar() (document.Value, error) {
	return document.Value{}, mismatch(c.k)
}

// skip fully discards a document without writing it anywhere.
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
