package debugcheck

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/jsonstream"
	"github.com/streamcodec/goldfish/stream"
)

func checkedReader(t *testing.T, text string) document.Reader {
	t.Helper()
	inner, err := jsonstream.NewReader(stream.NewPeekSource(strings.NewReader(text)))
	if err != nil {
		t.Fatalf("jsonstream.NewReader(%q): %v", text, err)
	}
	return NewReader(inner, nil)
}

func isMisused(err error) bool { return errors.Is(err, goldfisherr.Misused) }

// TestSeekPastEndDisarmsParent is spec.md scenario S3's first half: a
// forward seek that asks for more than a blob has left is a clean
// no-op, and the parent is usable immediately afterward.
func TestSeekPastEndDisarmsParent(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[ "hello" ]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	blob, err := elem.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}

	if _, err := blob.SeekForward(6); err != nil {
		t.Fatalf("SeekForward(6) on a 5-byte string: %v", err)
	}

	if _, err := arr.Next(); err != io.EOF {
		t.Errorf("expected parent Next to yield a clean EOF after an overshooting seek, got %v", err)
	}
}

// TestSeekExactlyToEndLeavesParentMisused is spec.md scenario S3's
// asymmetric half (resolved in spec §9): a seek that lands exactly on
// end-of-blob does not disarm the gate, so accessing the parent while
// the blob handle is still technically live fails library_misused.
func TestSeekExactlyToEndLeavesParentMisused(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[ "hello" ]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	blob, err := elem.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}

	if _, err := blob.SeekForward(5); err != nil {
		t.Fatalf("SeekForward(5) on a 5-byte string: %v", err)
	}

	if _, err := arr.Next(); !isMisused(err) {
		t.Errorf("expected library_misused accessing parent after an exact-length seek, got %v", err)
	}
}

// TestReadingParentWithUnreadBlobBytesIsMisused is spec.md scenario
// S3's closing clause: accessing the parent while the child string
// still has unread bytes fails library_misused.
func TestReadingParentWithUnreadBlobBytesIsMisused(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[ "hello" ]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	blob, err := elem.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}

	var buf [2]byte
	if _, err := blob.Read(buf[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if _, err := arr.Next(); !isMisused(err) {
		t.Errorf("expected library_misused with unread blob bytes remaining, got %v", err)
	}
}

// TestClosingBlobClearsMisuse confirms Close, not just exhaustion, is
// enough to satisfy the parent gate.
func TestClosingBlobClearsMisuse(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[ "hello" ]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	blob, err := elem.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}
	if err := blob.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := arr.Next(); err != io.EOF {
		t.Errorf("expected clean EOF after Close, got %v", err)
	}
}

// TestUnfinishedNestedArrayLeavesParentMisused is spec.md scenario S4:
// opening the inner array of [[1, 2]] and pulling both elements
// without finishing the inner array makes the outer Next fail.
func TestUnfinishedNestedArrayLeavesParentMisused(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[[1, 2]]`)
	outer, err := top.Array()
	if err != nil {
		t.Fatalf("outer Array: %v", err)
	}
	innerItem, err := outer.Next()
	if err != nil {
		t.Fatalf("outer Next: %v", err)
	}
	inner, err := innerItem.Array()
	if err != nil {
		t.Fatalf("inner Array: %v", err)
	}

	for _, want := range []uint64{1, 2} {
		elem, err := inner.Next()
		if err != nil {
			t.Fatalf("inner Next: %v", err)
		}
		v, err := elem.Scalar()
		if err != nil {
			t.Fatalf("inner Scalar: %v", err)
		}
		if v.Uint != want {
			t.Errorf("inner element = %d, want %d", v.Uint, want)
		}
	}

	if _, err := outer.Next(); !isMisused(err) {
		t.Errorf("expected library_misused before the inner array is finalized, got %v", err)
	}
}

// TestFinishingNestedArrayClearsParent confirms driving the inner
// array to io.EOF (rather than Close) is also sufficient.
func TestFinishingNestedArrayClearsParent(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[[1, 2]]`)
	outer, err := top.Array()
	if err != nil {
		t.Fatalf("outer Array: %v", err)
	}
	innerItem, err := outer.Next()
	if err != nil {
		t.Fatalf("outer Next: %v", err)
	}
	inner, err := innerItem.Array()
	if err != nil {
		t.Fatalf("inner Array: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := inner.Next(); err != nil {
			t.Fatalf("inner Next(%d): %v", i, err)
		}
	}
	if _, err := inner.Next(); err == nil {
		t.Fatal("expected io.EOF driving the inner array to completion")
	}

	if _, err := outer.Next(); err != io.EOF {
		t.Errorf("expected clean EOF on the outer array, got %v", err)
	}
}

// TestMapValueBeforeNextKeyIsMisused and TestMapNextKeyTwiceIsMisused
// are spec.md scenario S5.
func TestMapValueBeforeNextKeyIsMisused(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[{"a":1, "b":2}]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	m, err := elem.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	if _, err := m.Value(); !isMisused(err) {
		t.Errorf("expected library_misused calling Value before NextKey, got %v", err)
	}
}

func TestMapNextKeyTwiceIsMisused(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[{"a":1, "b":2}]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	m, err := elem.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	if _, err := m.NextKey(); err != nil {
		t.Fatalf("first NextKey: %v", err)
	}
	if _, err := m.NextKey(); !isMisused(err) {
		t.Errorf("expected library_misused calling NextKey twice without Value, got %v", err)
	}
}

// TestWellBehavedMapTraversalSucceeds is the control case: alternating
// NextKey/Value correctly never trips the checked reader.
func TestWellBehavedMapTraversalSucceeds(t *testing.T) {
	t.Parallel()

	top := checkedReader(t, `[{"a":1, "b":2}]`)
	arr, err := top.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	elem, err := arr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	m, err := elem.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	count := 0
	for {
		key, err := m.NextKey()
		if err != nil {
			break
		}
		if err := drainBlob(t, key); err != nil {
			t.Fatalf("draining key: %v", err)
		}
		value, err := m.Value()
		if err != nil {
			t.Fatalf("Value: %v", err)
		}
		if _, err := value.Scalar(); err != nil {
			t.Fatalf("Scalar: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("visited %d pairs, want 2", count)
	}

	if _, err := arr.Next(); err != io.EOF {
		t.Errorf("expected clean EOF closing the outer array, got %v", err)
	}
}

func drainBlob(t *testing.T, r document.Reader) error {
	t.Helper()
	b, err := r.Blob()
	if err != nil {
		return err
	}
	_, err = document.ReadAll(b)
	return err
}
