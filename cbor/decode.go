package cbor

import (
	"io"
	"math"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
)

// NewReader decodes the top-level item from src and returns its
// document. For container and blob kinds, the returned document holds
// a handle that lazily consumes further bytes from src as the caller
// traverses it (spec §4.2).
func NewReader(src io.Reader) (document.Reader, error) {
	return readItem(src)
}

// readItem decodes one head and dispatches on its major type.
func readItem(src io.Reader) (document.Reader, error) {
	h, err := readHead(src)
	if err != nil {
		return nil, err
	}
	if h.isBreak() {
		return nil, goldfisherr.New(goldfisherr.IllFormed, "break outside an indefinite container")
	}
	return itemFromHead(src, h)
}

// readItemOrEnd is readItem for a position where a break byte is a
// valid, expected terminator: the next element slot of an indefinite
// array or the next key slot of an indefinite map (spec §4.2, §6.3).
func readItemOrEnd(src io.Reader) (document.Reader, bool, error) {
	h, err := readHead(src)
	if err != nil {
		return nil, false, err
	}
	if h.isBreak() {
		return nil, true, nil
	}
	item, err := itemFromHead(src, h)
	return item, false, err
}

func itemFromHead(src io.Reader, h head) (document.Reader, error) {
	switch h.major {
	case majorUint:
		if h.indefinite() {
			return nil, goldfisherr.New(goldfisherr.IllFormed, "indefinite-length integer")
		}
		return scalarReader{document.OfUint(h.arg)}, nil

	case majorInt:
		if h.indefinite() {
			return nil, goldfisherr.New(goldfisherr.IllFormed, "indefinite-length integer")
		}
		if h.arg > uint64(math.MaxInt64) {
			return nil, goldfisherr.New(goldfisherr.IntegerOverflow, "negative integer magnitude %d does not fit in int64", h.arg)
		}
		return scalarReader{document.OfInt(-1 - int64(h.arg))}, nil

	case majorBinary:
		return newBlobReader(src, h, kind.Binary, majorBinary)

	case majorString:
		return newBlobReader(src, h, kind.String, majorString)

	case majorArray:
		return newArrayReader(src, h), nil

	case majorMap:
		return newMapReader(src, h), nil

	case majorSimple:
		return simpleFromHead(h)

	default: // majorTag: not part of this subset (spec §4.2's mapping table has no entry for it).
		return nil, goldfisherr.New(goldfisherr.IllFormed, "unknown major type %d", h.major)
	}
}

func simpleFromHead(h head) (document.Reader, error) {
	switch h.info {
	case aiFalse:
		return scalarReader{document.OfBool(false)}, nil
	case aiTrue:
		return scalarReader{document.OfBool(true)}, nil
	case aiNull:
		return scalarReader{document.Null()}, nil
	case aiUndefined:
		return scalarReader{document.Undefined()}, nil
	case aiFloat16:
		return scalarReader{document.OfFloat(float16ToFloat64(uint16(h.arg)))}, nil
	case aiFloat32:
		return scalarReader{document.OfFloat(float64(math.Float32frombits(uint32(h.arg))))}, nil
	case aiFloat64:
		return scalarReader{document.OfFloat(math.Float64frombits(h.arg))}, nil
	default:
		return nil, goldfisherr.New(goldfisherr.IllFormed, "unknown major-type/additional-info combination (7, %d)", h.info)
	}
}

// float16ToFloat64 converts an IEEE 754 half-precision bit pattern to
// a float64 (RFC 8949 Appendix D's halfToFloat, stdlib math-only: Go
// has no half-precision type, and none of the reference pack's
// dependencies exports a float16 decoder as a stable public API, so
// this one function is the justified standard-library exception — see
// DESIGN.md).
func float16ToFloat64(bits uint16) float64 {
	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1f
	frac := uint32(bits) & 0x3ff

	var f32bits uint32
	switch exp {
	case 0:
		if frac == 0 {
			f32bits = sign << 31
		} else {
			// Subnormal half: normalize into a normal float32.
			e := 0
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3ff
			exp32 := uint32(127 - 15 + e + 1)
			f32bits = sign<<31 | exp32<<23 | frac<<13
		}
	case 0x1f:
		f32bits = sign<<31 | 0xff<<23 | frac<<13
	default:
		f32bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return float64(math.Float32frombits(f32bits))
}

// scalarReader is the document.Reader for the six inline scalar kinds.
type scalarReader struct {
	value document.Value
}

func (s scalarReader) Kind() kind.Kind { return s.value.Kind }

func (s scalarReader) Scalar() (document.Value, error) { return s.value, nil }

func (s scalarReader) Blob() (document.BlobReader, error) {
	return nil, mismatch(s.Kind())
}
func (s scalarReader) Array() (document.ArrayReader, error) {
	return nil, mismatch(s.Kind())
}
func (s scalarReader) Map() (document.MapReader, error) {
	return nil, mismatch(s.Kind())
}

func mismatch(k kind.Kind) error {
	return goldfisherr.New(goldfisherr.KindMismatch, "document is %s", k)
}

// containerReaderBase implements the Scalar/Blob/Array/Map dispatch
// shared by array and map readers, each of which is only valid for
// its own accessor.
type containerReaderBase struct {
	k kind.Kind
}

func (c containerReaderBase) Kind() kind.Kind { return c.k }
func (c containerReaderBase) Scalar() (document.Value, error) {
	return document.Value{}, mismatch(c.k)
}
