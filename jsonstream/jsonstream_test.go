package jsonstream

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

func parse(t *testing.T, text string) document.Reader {
	t.Helper()
	r, err := NewReader(stream.NewPeekSource(strings.NewReader(text)))
	if err != nil {
		t.Fatalf("NewReader(%q): %v", text, err)
	}
	return r
}

func TestScalarLiterals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want document.Value
	}{
		{"null", document.Null()},
		{"true", document.OfBool(true)},
		{"false", document.OfBool(false)},
	}
	for _, c := range cases {
		v, err := parse(t, c.text).Scalar()
		if err != nil {
			t.Fatalf("Scalar(%q): %v", c.text, err)
		}
		if v != c.want {
			t.Errorf("parse(%q) = %+v, want %+v", c.text, v, c.want)
		}
	}
}

// TestNumberKindInference covers spec §4.3's shape/magnitude rules,
// including the 2^63 and 2^64 boundaries.
func TestNumberKindInference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text     string
		wantKind kind.Kind
	}{
		{"0", kind.Uint},
		{"18446744073709551615", kind.Uint},       // 2^64 - 1, max uint64
		{"18446744073709551616", kind.Float},       // 2^64, overflows uint64
		{"9223372036854775808", kind.Uint},         // 2^63, fits uint64 but not int64
		{"-9223372036854775808", kind.Int},         // -2^63, exactly int64 min
		{"-9223372036854775809", kind.Float},       // -(2^63 + 1), magnitude exceeds 2^63
		{"-1", kind.Int},
		{"1.5", kind.Float},
		{"1e10", kind.Float},
		{"-0", kind.Int},
	}
	for _, c := range cases {
		r := parse(t, c.text)
		if r.Kind() != c.wantKind {
			t.Errorf("parse(%q).Kind() = %s, want %s", c.text, r.Kind(), c.wantKind)
		}
	}
}

func TestNumberMagnitudeValues(t *testing.T) {
	t.Parallel()

	v, err := parse(t, "9223372036854775808").Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	if v.Kind != kind.Uint || v.Uint != 1<<63 {
		t.Errorf("got %+v, want uint(2^63)", v)
	}

	v, err = parse(t, "-9223372036854775808").Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	if v.Kind != kind.Int || v.Int != math.MinInt64 {
		t.Errorf("got %+v, want int(MinInt64)", v)
	}
}

func TestStringEscapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{`"plain"`, "plain"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"quote\"inside"`, `quote"inside`},
		{`"café"`, "café"},
		{`"😀"`, "😀"},
	}
	for _, c := range cases {
		r := parse(t, c.text)
		if r.Kind() != kind.String {
			t.Fatalf("parse(%q).Kind() = %s, want string", c.text, r.Kind())
		}
		blob, err := r.Blob()
		if err != nil {
			t.Fatalf("Blob(%q): %v", c.text, err)
		}
		got, err := document.ReadAll(blob)
		if err != nil {
			t.Fatalf("reading %q: %v", c.text, err)
		}
		if string(got) != c.want {
			t.Errorf("parse(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestArrayRoundTrip(t *testing.T) {
	t.Parallel()

	r := parse(t, `[1, 2, 3]`)
	a, err := r.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	want := []uint64{1, 2, 3}
	for i, w := range want {
		elem, err := a.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		v, err := elem.Scalar()
		if err != nil {
			t.Fatalf("Scalar(%d): %v", i, err)
		}
		if v.Uint != w {
			t.Errorf("element %d = %d, want %d", i, v.Uint, w)
		}
	}
	if _, err := a.Next(); err == nil {
		t.Error("expected EOF after three elements")
	}
}

func TestEmptyArrayAndObject(t *testing.T) {
	t.Parallel()

	a, err := parse(t, `[]`).Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if _, err := a.Next(); err == nil {
		t.Error("expected immediate EOF on empty array")
	}

	m, err := parse(t, `{}`).Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if _, err := m.NextKey(); err == nil {
		t.Error("expected immediate EOF on empty object")
	}
}

func TestObjectRoundTrip(t *testing.T) {
	t.Parallel()

	r := parse(t, `{"a": 1, "b": 2}`)
	m, err := r.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	want := map[string]uint64{"a": 1, "b": 2}
	seen := map[string]uint64{}
	for {
		key, err := m.NextKey()
		if err != nil {
			break
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
	if len(seen) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(seen), len(want))
	}
	for k, w := range want {
		if seen[k] != w {
			t.Errorf("pair %q = %d, want %d", k, seen[k], w)
		}
	}
}

func TestTrailingCommaInArrayIsIllFormed(t *testing.T) {
	t.Parallel()

	a, err := parse(t, `[1,2,]`).Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if _, err := a.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := a.Next(); err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if _, err := a.Next(); err == nil {
		t.Error("expected trailing comma before ']' to be ill_formed")
	}
}

func TestTrailingCommaInObjectIsIllFormed(t *testing.T) {
	t.Parallel()

	m, err := parse(t, `{"a":1,}`).Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	key, err := m.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	keyBlob, err := key.Blob()
	if err != nil {
		t.Fatalf("key Blob: %v", err)
	}
	if _, err := document.ReadAll(keyBlob); err != nil {
		t.Fatalf("reading key: %v", err)
	}
	if _, err := m.Value(); err != nil {
		t.Fatalf("Value: %v", err)
	}
	if _, err := m.NextKey(); err == nil {
		t.Error("expected trailing comma before '}' to be ill_formed")
	}
}

func TestWriteUndefinedIsIllFormed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteUndefined(); err == nil {
		t.Error("expected WriteUndefined to fail per spec §9")
	}
}

func TestWriteScalarsThenParseBack(t *testing.T) {
	t.Parallel()

	cases := []document.Value{
		document.Null(),
		document.OfBool(true),
		document.OfBool(false),
		document.OfUint(42),
		document.OfInt(-42),
		document.OfFloat(2.5),
	}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := NewWriter(&buf).WriteValue(v); err != nil {
			t.Fatalf("WriteValue(%+v): %v", v, err)
		}
		got, err := parse(t, buf.String()).Scalar()
		if err != nil {
			t.Fatalf("re-parsing %q: %v", buf.String(), err)
		}
		if got != v {
			t.Errorf("round trip of %+v produced %+v from text %q", v, got, buf.String())
		}
	}
}

func TestWriteStringEscapesControlCharacters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	bw, err := w.WriteString(document.Indefinite)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := bw.Write([]byte("a\nb\"c")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := `"a\nb\"c"`
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	got, err := document.ReadAll(mustBlob(t, parse(t, buf.String())))
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(got) != "a\nb\"c" {
		t.Errorf("round trip = %q, want %q", got, "a\nb\"c")
	}
}

func TestWriteInvalidUTF8IsIllFormedByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	bw, err := w.WriteString(document.Indefinite)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := bw.Write([]byte("valid\xffbyte")); err == nil {
		t.Error("expected invalid UTF-8 to fail with ill_formed by default")
	}
}

func TestWriteInvalidUTF8AtCloseIsIllFormedByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	bw, err := w.WriteString(document.Indefinite)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	// A lone leading byte of a multi-byte sequence, left dangling at Close.
	if _, err := bw.Write([]byte("valid\xc2")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := bw.Close(); err == nil {
		t.Error("expected a dangling invalid UTF-8 tail to fail Close by default")
	}
}

func TestWriteInvalidUTF8PassesThroughWithLenientOption(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf, WithLenientUTF8())
	bw, err := w.WriteString(document.Indefinite)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := bw.Write([]byte("valid\xffbyte")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := "\"valid\xffbyte\""
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func mustBlob(t *testing.T, r document.Reader) document.BlobReader {
	t.Helper()
	b, err := r.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}
	return b
}
