package streamio

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/streamcodec/goldfish/stream"
)

// GzipSource decompresses a gzip-framed byte stream, grounded on the
// compress package mebo builds its own transparent codec layer on top
// of: klauspost/compress's gzip.Reader is drop-in compatible with the
// standard library's but meaningfully faster.
type GzipSource struct {
	*gzip.Reader
}

// NewGzipSource wraps r, consuming and validating the gzip header
// immediately.
func NewGzipSource(r io.Reader) (*GzipSource, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &GzipSource{gz}, nil
}

var _ stream.Source = (*GzipSource)(nil)

// GzipSink compresses writes into a gzip-framed byte stream. Close
// must be called to flush the final block and footer; it is separate
// from Flush, which only forces a sync point mid-stream.
type GzipSink struct {
	w *gzip.Writer
}

// NewGzipSink wraps w, writing the gzip header immediately.
func NewGzipSink(w io.Writer) *GzipSink {
	return &GzipSink{w: gzip.NewWriter(w)}
}

func (s *GzipSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *GzipSink) Flush() error                { return s.w.Flush() }
func (s *GzipSink) Close() error                { return s.w.Close() }

var _ stream.Sink = (*GzipSink)(nil)
