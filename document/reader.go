package document

import (
	"io"

	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
)

// Reader is a single document on the read side: a scalar value, or a
// handle to a child BlobReader/ArrayReader/MapReader that consumes
// subsequent bytes from the same underlying stream as its parent.
//
// Kind is fixed at construction (spec §3.5 "kind is determined at
// creation"). Calling the accessor that doesn't match Kind fails with
// goldfisherr.KindMismatch.
type Reader interface {
	// Kind reports the document's kind. It never changes.
	Kind() kind.Kind

	// Scalar returns the inline value for one of the six scalar
	// kinds. Fails with goldfisherr.KindMismatch for container/blob kinds.
	Scalar() (Value, error)

	// Blob returns the child reader for Binary or String. Fails with
	// goldfisherr.KindMismatch otherwise.
	Blob() (BlobReader, error)

	// Array returns the child reader for Array. Fails with
	// goldfisherr.KindMismatch otherwise.
	Array() (ArrayReader, error)

	// Map returns the child reader for Map. Fails with
	// goldfisherr.KindMismatch otherwise.
	Map() (MapReader, error)
}

// BlobReader streams the content of a Binary or String document
// (spec §3.3). It satisfies io.Reader: Read returns a short read only
// at end-of-blob, and every call after that returns (0, io.EOF).
//
// Seeking forward is consume-and-discard; there is no backward seek.
// Close finalizes the blob, discarding any unread bytes — the
// streaming analogue of the "flush"/skip-to-end operation in spec
// §3.4 used by a parent to dispose of a partially-consumed child.
type BlobReader interface {
	io.Reader

	// SeekForward discards up to n unread bytes, returning the number
	// actually discarded. Per spec §6.1, actual < n only once the blob
	// is exhausted.
	SeekForward(n int64) (int64, error)

	// Close finalizes the blob. It is idempotent.
	Close() error
}

// ArrayReader streams the elements of an Array document (spec §3.4).
type ArrayReader interface {
	// Next returns the next element, or (nil, io.EOF) once the array
	// is exhausted.
	Next() (Reader, error)

	// Close finalizes the array, skipping any unread elements. Idempotent.
	Close() error
}

// MapReader streams the key/value pairs of a Map document (spec §3.4,
// §3.5 "map key/value alternation"). Every NextKey call that returns a
// non-nil key must be followed by exactly one Value call before the
// next NextKey call; violating this in a checked reader (see package
// debugcheck) fails with goldfisherr.Misused.
type MapReader interface {
	// NextKey returns the next key document, or (nil, io.EOF) once the
	// map is exhausted.
	NextKey() (Reader, error)

	// Value returns the value document paired with the most recent
	// key returned by NextKey. Must be called exactly once per
	// successful NextKey.
	Value() (Reader, error)

	// Close finalizes the map, skipping any unread pairs. Idempotent.
	Close() error
}

// ReadAll drains b into a single byte slice. It exists for tests and
// small blobs; large blobs should be streamed through Read directly
// to preserve the library's bounded-memory property (spec §8
// invariant 4).
func ReadAll(b BlobReader) ([]byte, error) {
	return io.ReadAll(b)
}

// AsScalar is a convenience that fetches r's Scalar and checks its
// kind matches want, failing with goldfisherr.KindMismatch otherwise.
func AsScalar(r Reader, want kind.Kind) (Value, error) {
	if r.Kind() != want {
		return Value{}, goldfisherr.New(goldfisherr.KindMismatch, "expected %s, got %s", want, r.Kind())
	}
	return r.Scalar()
}
