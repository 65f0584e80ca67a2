package cbor

import (
	"bytes"
	"io"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/kind"
)

// TestDecodeArrayOfTwoUints is spec.md scenario S1: the wire bytes
// 82 01 02 decode to an array of the two unsigned integers 1 and 2.
func TestDecodeArrayOfTwoUints(t *testing.T) {
	t.Parallel()

	wire := []byte{0x82, 0x01, 0x02}
	r, err := NewReader(bytes.NewReader(wire))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Kind() != kind.Array {
		t.Fatalf("Kind() = %s, want array", r.Kind())
	}

	a, err := r.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}

	want := []uint64{1, 2}
	for i, w := range want {
		elem, err := a.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		v, err := elem.Scalar()
		if err != nil {
			t.Fatalf("Scalar(%d): %v", i, err)
		}
		if v.Kind != kind.Uint || v.Uint != w {
			t.Errorf("element %d = %+v, want uint(%d)", i, v, w)
		}
	}

	if _, err := a.Next(); err != io.EOF {
		t.Fatalf("expected clean EOF after two elements, got %v", err)
	}
}

// TestDecodeMapOfTwoPairs is spec.md scenario S2: the wire bytes
// a2 61 61 01 61 62 02 decode to the map {"a": 1, "b": 2}, confirming
// that a definite map header's count is pairs, not raw elements.
func TestDecodeMapOfTwoPairs(t *testing.T) {
	t.Parallel()

	wire := []byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x62, 0x02}
	r, err := NewReader(bytes.NewReader(wire))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Kind() != kind.Map {
		t.Fatalf("Kind() = %s, want map", r.Kind())
	}

	m, err := r.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	wantPairs := map[string]uint64{"a": 1, "b": 2}
	seen := map[string]uint64{}
	for {
		key, err := m.NextKey()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("NextKey: %v", err)
		}
		keyBlob, err := key.Blob()
		if err != nil {
			t.Fatalf("key Blob: %v", err)
		}
		keyBytes, err := document.ReadAll(keyBlob)
		if err != nil {
			t.Fatalf("reading key: %v", err)
		}
		value, err := m.Value()
		if err != nil {
			t.Fatalf("Value: %v", err)
		}
		v, err := value.Scalar()
		if err != nil {
			t.Fatalf("value Scalar: %v", err)
		}
		seen[string(keyBytes)] = v.Uint
	}

	if len(seen) != len(wantPairs) {
		t.Fatalf("got %d pairs, want %d", len(seen), len(wantPairs))
	}
	for k, want := range wantPairs {
		if got := seen[k]; got != want {
			t.Errorf("pair %q = %d, want %d", k, got, want)
		}
	}
}

// TestEncodeIndefiniteStringChunks is spec.md scenario S6: writing an
// indefinite string in two chunks, "abc" then "de", produces exactly
// 5f 43 61 62 63 42 64 65 ff on the wire.
func TestEncodeIndefiniteStringChunks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)

	bw, err := w.WriteString(document.Indefinite)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := bw.Write([]byte("abc")); err != nil {
		t.Fatalf("writing first chunk: %v", err)
	}
	if _, err := bw.Write([]byte("de")); err != nil {
		t.Fatalf("writing second chunk: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []byte{0x5f, 0x43, 0x61, 0x62, 0x63, 0x42, 0x64, 0x65, 0xff}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("wire bytes = %x, want %x", buf.Bytes(), want)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-decoding: %v", err)
	}
	blob, err := r.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}
	got, err := document.ReadAll(blob)
	if err != nil {
		t.Fatalf("reading blob back: %v", err)
	}
	if string(got) != "abcde" {
		t.Errorf("read-back content = %q, want %q", got, "abcde")
	}
}

// TestScalarRoundTrip writes and reads back every scalar kind.
func TestScalarRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []document.Value{
		document.Null(),
		document.Undefined(),
		document.OfBool(true),
		document.OfBool(false),
		document.OfUint(0),
		document.OfUint(1<<63 + 5),
		document.OfInt(-1),
		document.OfInt(-(1 << 62)),
		document.OfFloat(3.5),
		document.OfFloat(-0.0),
	}

	for _, v := range cases {
		var buf bytes.Buffer
		if err := NewWriter(&buf).WriteValue(v); err != nil {
			t.Fatalf("WriteValue(%+v): %v", v, err)
		}
		r, err := NewReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("NewReader(%+v): %v", v, err)
		}
		got, err := r.Scalar()
		if err != nil {
			t.Fatalf("Scalar(%+v): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip of %+v produced %+v", v, got)
		}
	}
}

// TestDecodeAgainstFxamackerOracle cross-checks our reader against
// fxamacker/cbor, the module's designated CBOR oracle (SPEC_FULL.md
// §4.2): bytes produced by fxamacker's encoder must decode through our
// reader to the equivalent document.
func TestDecodeAgainstFxamackerOracle(t *testing.T) {
	t.Parallel()

	wire, err := fxcbor.Marshal([]int{10, 20, 30})
	if err != nil {
		t.Fatalf("fxamacker Marshal: %v", err)
	}

	r, err := NewReader(bytes.NewReader(wire))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	a, err := r.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}

	want := []int64{10, 20, 30}
	for i, w := range want {
		elem, err := a.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		v, err := elem.Scalar()
		if err != nil {
			t.Fatalf("Scalar(%d): %v", i, err)
		}
		if v.Kind != kind.Uint || int64(v.Uint) != w {
			t.Errorf("element %d = %+v, want uint(%d)", i, v, w)
		}
	}
}

// TestEncodeAgainstFxamackerOracle cross-checks the other direction:
// bytes produced by our writer must decode through fxamacker/cbor into
// the equivalent Go value.
func TestEncodeAgainstFxamackerOracle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	arr, err := w.WriteArray(3)
	if err != nil {
		t.Fatalf("WriteArray: %v", err)
	}
	for _, v := range []uint64{10, 20, 30} {
		elem, err := arr.Append()
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if err := elem.WriteUint(v); err != nil {
			t.Fatalf("WriteUint: %v", err)
		}
	}
	if err := arr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var decoded []uint64
	if err := fxcbor.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("fxamacker Unmarshal: %v", err)
	}
	want := []uint64{10, 20, 30}
	if len(decoded) != len(want) {
		t.Fatalf("decoded = %v, want %v", decoded, want)
	}
	for i := range want {
		if decoded[i] != want[i] {
			t.Errorf("decoded[%d] = %d, want %d", i, decoded[i], want[i])
		}
	}
}

// TestDefiniteBlobLengthMismatchFails confirms a definite blob writer
// rejects Close before its declared length is met (spec §4.4).
func TestDefiniteBlobLengthMismatchFails(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bw, err := NewWriter(&buf).WriteString(5)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := bw.Write([]byte("ab")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := bw.Close(); err == nil {
		t.Error("expected Close to fail when short of declared length")
	}
}
