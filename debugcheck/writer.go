package debugcheck

import (
	"log/slog"

	"github.com/streamcodec/goldfish/document"
)

// NewWriter wraps inner with the write-side mirror of NewReader's
// invariant: a container's Append/AppendKey/AppendValue must not be
// called again while the Binary/String/Array/Map child it most
// recently opened is still open. logger may be nil.
//
// Under -tags goldfish_nocheck, Enabled is false and NewWriter returns
// inner unwrapped.
func NewWriter(inner document.Writer, logger *slog.Logger) document.Writer {
	if !Enabled {
		return inner
	}
	return &trackedWriter{inner: inner, logger: logger}
}

type trackedWriter struct {
	inner  document.Writer
	gate   *Gate
	logger *slog.Logger
}

func (w *trackedWriter) WriteValue(v document.Value) error { return w.inner.WriteValue(v) }
func (w *trackedWriter) WriteNull() error                  { return w.inner.WriteNull() }
func (w *trackedWriter) WriteUndefined() error              { return w.inner.WriteUndefined() }
func (w *trackedWriter) WriteBool(v bool) error             { return w.inner.WriteBool(v) }
func (w *trackedWriter) WriteUint(v uint64) error           { return w.inner.WriteUint(v) }
func (w *trackedWriter) WriteInt(v int64) error             { return w.inner.WriteInt(v) }
func (w *trackedWriter) WriteFloat(v float64) error         { return w.inner.WriteFloat(v) }

func (w *trackedWriter) WriteBinary(length int64) (document.BlobWriter, error) {
	b, err := w.inner.WriteBinary(length)
	if err != nil {
		return nil, err
	}
	g := newGate(w.logger, "binary")
	return &trackedBlobWriter{inner: b, own: g}, nil
}

func (w *trackedWriter) WriteString(length int64) (document.BlobWriter, error) {
	b, err := w.inner.WriteString(length)
	if err != nil {
		return nil, err
	}
	g := newGate(w.logger, "string")
	return &trackedBlobWriter{inner: b, own: g}, nil
}

func (w *trackedWriter) WriteArray(count int64) (document.ArrayWriter, error) {
	a, err := w.inner.WriteArray(count)
	if err != nil {
		return nil, err
	}
	return &trackedArrayWriter{inner: a, logger: w.logger}, nil
}

func (w *trackedWriter) WriteMap(count int64) (document.MapWriter, error) {
	m, err := w.inner.WriteMap(count)
	if err != nil {
		return nil, err
	}
	return &trackedMapWriter{inner: m, logger: w.logger}, nil
}

type trackedBlobWriter struct {
	inner  document.BlobWriter
	own    *Gate
	closed bool
}

func (b *trackedBlobWriter) Write(p []byte) (int, error) { return b.inner.Write(p) }

func (b *trackedBlobWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.own.disarm()
	return b.inner.Close()
}

type trackedArrayWriter struct {
	inner  document.ArrayWriter
	child  *Gate
	logger *slog.Logger
	closed bool
}

func (a *trackedArrayWriter) Append() (document.Writer, error) {
	if err := a.child.check(); err != nil {
		return nil, err
	}
	child, err := a.inner.Append()
	if err != nil {
		return nil, err
	}
	g := newGate(a.logger, "array element")
	a.child = g
	return &trackedElementWriter{inner: child, own: g, logger: a.logger}, nil
}

func (a *trackedArrayWriter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if err := a.child.check(); err != nil {
		return err
	}
	return a.inner.Close()
}

type trackedMapWriter struct {
	inner  document.MapWriter
	child  *Gate
	logger *slog.Logger
	closed bool
}

func (m *trackedMapWriter) AppendKey() (document.Writer, error) {
	if err := m.child.check(); err != nil {
		return nil, err
	}
	child, err := m.inner.AppendKey()
	if err != nil {
		return nil, err
	}
	g := newGate(m.logger, "map key")
	m.child = g
	return &trackedElementWriter{inner: child, own: g, logger: m.logger}, nil
}

func (m *trackedMapWriter) AppendValue() (document.Writer, error) {
	if err := m.child.check(); err != nil {
		return nil, err
	}
	child, err := m.inner.AppendValue()
	if err != nil {
		return nil, err
	}
	g := newGate(m.logger, "map value")
	m.child = g
	return &trackedElementWriter{inner: child, own: g, logger: m.logger}, nil
}

func (m *trackedMapWriter) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if err := m.child.check(); err != nil {
		return err
	}
	return m.inner.Close()
}

// trackedElementWriter is a single slot returned by Append/AppendKey/
// AppendValue: a plain scalar write disarms its own gate immediately,
// since nothing lingers after it; opening a Binary/String/Array/Map
// child leaves the gate armed until that child's Close.
type trackedElementWriter struct {
	inner  document.Writer
	own    *Gate
	logger *slog.Logger
}

func (w *trackedElementWriter) WriteValue(v document.Value) error {
	w.own.disarm()
	return w.inner.WriteValue(v)
}
func (w *trackedElementWriter) WriteNull() error { w.own.disarm(); return w.inner.WriteNull() }
func (w *trackedElementWriter) WriteUndefined() error {
	w.own.disarm()
	return w.inner.WriteUndefined()
}
func (w *trackedElementWriter) WriteBool(v bool) error { w.own.disarm(); return w.inner.WriteBool(v) }
func (w *trackedElementWriter) WriteUint(v uint64) error {
	w.own.disarm()
	return w.inner.WriteUint(v)
}
func (w *trackedElementWriter) WriteInt(v int64) error { w.own.disarm(); return w.inner.WriteInt(v) }
func (w *trackedElementWriter) WriteFloat(v float64) error {
	w.own.disarm()
	return w.inner.WriteFloat(v)
}

func (w *trackedElementWriter) WriteBinary(length int64) (document.BlobWriter, error) {
	b, err := w.inner.WriteBinary(length)
	if err != nil {
		return nil, err
	}
	return &trackedBlobWriter{inner: b, own: w.own}, nil
}

func (w *trackedElementWriter) WriteString(length int64) (document.BlobWriter, error) {
	b, err := w.inner.WriteString(length)
	if err != nil {
		return nil, err
	}
	return &trackedBlobWriter{inner: b, own: w.own}, nil
}

func (w *trackedElementWriter) WriteArray(count int64) (document.ArrayWriter, error) {
	a, err := w.inner.WriteArray(count)
	if err != nil {
		return nil, err
	}
	return &trackedArrayWriterWithOwn{trackedArrayWriter: trackedArrayWriter{inner: a, logger: w.logger}, own: w.own}, nil
}

func (w *trackedElementWriter) WriteMap(count int64) (document.MapWriter, error) {
	m, err := w.inner.WriteMap(count)
	if err != nil {
		return nil, err
	}
	return &trackedMapWriterWithOwn{trackedMapWriter: trackedMapWriter{inner: m, logger: w.logger}, own: w.own}, nil
}

// trackedArrayWriterWithOwn/trackedMapWriterWithOwn additionally
// disarm the gate their enclosing element writer holds once the
// nested array/map itself closes, propagating completion up one level.
type trackedArrayWriterWithOwn struct {
	trackedArrayWriter
	own *Gate
}

func (a *trackedArrayWriterWithOwn) Close() error {
	err := a.trackedArrayWriter.Close()
	a.own.disarm()
	return err
}

type trackedMapWriterWithOwn struct {
	trackedMapWriter
	own *Gate
}

func (m *trackedMapWriterWithOwn) Close() error {
	err := m.trackedMapWriter.Close()
	m.own.disarm()
	return err
}
