package debugcheck

import (
	"io"
	"log/slog"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// NewReader wraps inner so that accessing an ancestor before a
// descendant Binary/String/Array/Map handle is finished fails with
// goldfisherr.Misused instead of corrupting the underlying stream
// position. logger may be nil.
//
// Under -tags goldfish_nocheck, Enabled is false and NewReader returns
// inner unwrapped: the checks compile away entirely rather than merely
// becoming no-ops at runtime.
func NewReader(inner document.Reader, logger *slog.Logger) document.Reader {
	if !Enabled {
		return inner
	}
	return &trackedItem{inner: inner, logger: logger}
}

// trackedItem is a single document, wrapping whichever of
// Blob/Array/Map the caller ends up using. gate is the slot this item
// occupies in its own parent container (nil at the top level).
type trackedItem struct {
	inner  document.Reader
	gate   *Gate
	logger *slog.Logger
}

func (t *trackedItem) Kind() kind.Kind                  { return t.inner.Kind() }
func (t *trackedItem) Scalar() (document.Value, error)  { return t.inner.Scalar() }

func (t *trackedItem) Blob() (document.BlobReader, error) {
	b, err := t.inner.Blob()
	if err != nil {
		return nil, err
	}
	return &trackedBlob{inner: b, own: t.gate}, nil
}

func (t *trackedItem) Array() (document.ArrayReader, error) {
	a, err := t.inner.Array()
	if err != nil {
		return nil, err
	}
	return &trackedArray{inner: a, own: t.gate, logger: t.logger}, nil
}

func (t *trackedItem) Map() (document.MapReader, error) {
	m, err := t.inner.Map()
	if err != nil {
		return nil, err
	}
	return &trackedMap{inner: m, own: t.gate, logger: t.logger}, nil
}

// wrapChild returns elem unmodified if it is a scalar — an inline
// value has no lingering stream position to protect — or wraps it
// with a freshly-armed gate otherwise, recording that gate as child so
// the next Next/NextKey call on the producing container can check it.
func wrapChild(elem document.Reader, logger *slog.Logger, what string, child **Gate) document.Reader {
	if elem.Kind().IsScalar() {
		*child = nil
		return elem
	}
	g := newGate(logger, what)
	*child = g
	return &trackedItem{inner: elem, gate: g, logger: logger}
}

// trackedBlob disarms own, the gate its parent container is holding
// for it, the moment a Read or SeekForward call's result proves the
// blob is exhausted — i.e. the call asked for more than remained.
// A call that exactly exhausts the blob without asking for more
// leaves it armed; only a subsequent call (or Close) can disarm it,
// matching the original's seek-to-exactly-end-still-misused,
// seek-past-end-ok asymmetry.
type trackedBlob struct {
	inner  document.BlobReader
	own    *Gate
	closed bool
}

func (b *trackedBlob) Read(p []byte) (int, error) {
	n, err := b.inner.Read(p)
	if n < len(p) {
		b.own.disarm()
	}
	return n, err
}

func (b *trackedBlob) SeekForward(n int64) (int64, error) {
	d, err := b.inner.SeekForward(n)
	if d < n {
		b.own.disarm()
	}
	return d, err
}

func (b *trackedBlob) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.own.disarm()
	return b.inner.Close()
}

type trackedArray struct {
	inner  document.ArrayReader
	own    *Gate
	child  *Gate
	logger *slog.Logger
	closed bool
}

func (a *trackedArray) Next() (document.Reader, error) {
	if err := a.child.check(); err != nil {
		return nil, err
	}
	elem, err := a.inner.Next()
	if err != nil {
		if err == io.EOF {
			a.child = nil
			a.own.disarm()
		}
		return nil, err
	}
	return wrapChild(elem, a.logger, "array element", &a.child), nil
}

func (a *trackedArray) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.child = nil
	a.own.disarm()
	return a.inner.Close()
}

type trackedMap struct {
	inner  document.MapReader
	own    *Gate
	child  *Gate
	logger *slog.Logger
	closed bool
}

func (m *trackedMap) NextKey() (document.Reader, error) {
	if err := m.child.check(); err != nil {
		return nil, err
	}
	key, err := m.inner.NextKey()
	if err != nil {
		if err == io.EOF {
			m.child = nil
			m.own.disarm()
		}
		return nil, err
	}
	return wrapChild(key, m.logger, "map key", &m.child), nil
}

func (m *trackedMap) Value() (document.Reader, error) {
	if err := m.child.check(); err != nil {
		return nil, err
	}
	value, err := m.inner.Value()
	if err != nil {
		return nil, err
	}
	return wrapChild(value, m.logger, "map value", &m.child), nil
}

func (m *trackedMap) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.child = nil
	m.own.disarm()
	return m.inner.Close()
}

var _ stream.ForwardSeeker = (*trackedBlob)(nil)
