package streamio

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/streamcodec/goldfish/stream"
)

// LZ4Source decompresses an lz4-framed byte stream, the streaming
// counterpart to the whole-buffer lz4.Compressor/lz4.UncompressBlock
// pair mebo's compress package wraps for its own one-shot blocks.
type LZ4Source struct {
	*lz4.Reader
}

// NewLZ4Source wraps r.
func NewLZ4Source(r io.Reader) *LZ4Source {
	return &LZ4Source{lz4.NewReader(r)}
}

var _ stream.Source = (*LZ4Source)(nil)

// LZ4Sink compresses writes into an lz4-framed byte stream.
type LZ4Sink struct {
	w *lz4.Writer
}

// NewLZ4Sink wraps w.
func NewLZ4Sink(w io.Writer) *LZ4Sink {
	return &LZ4Sink{w: lz4.NewWriter(w)}
}

func (s *LZ4Sink) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *LZ4Sink) Flush() error {
	if f, ok := (io.Writer)(s.w).(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *LZ4Sink) Close() error { return s.w.Close() }

var _ stream.Sink = (*LZ4Sink)(nil)
