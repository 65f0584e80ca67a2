package cbor

import (
	"errors"
	"io"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// blobItemReader is the document.Reader for Binary/String: Kind is
// fixed at construction and Blob is the only accessor that succeeds
// (spec §3.5).
type blobItemReader struct {
	containerReaderBase
	blob *blobReader
}

func newBlobReader(src io.Reader, h head, k kind.Kind, major byte) (document.Reader, error) {
	b := &blobReader{src: src, kindVal: k, major: major}
	if h.indefinite() {
		b.indefinite = true
	} else {
		b.remaining = int64(h.arg)
	}
	return blobItemReader{containerReaderBase{k}, b}, nil
}

func (r blobItemReader) Blob() (document.BlobReader, error) { return r.blob, nil }
func (r blobItemReader) Array() (document.ArrayReader, error) {
	return nil, mismatch(r.Kind())
}
func (r blobItemReader) Map() (document.MapReader, error) {
	return nil, mismatch(r.Kind())
}

// blobReader streams a Binary or String blob's wire content. A
// definite blob is one length-prefixed run of bytes; an indefinite
// blob is a sequence of definite chunks of the same major type,
// terminated by a break byte (spec §4.2, §6.3 "indefinite blob
// concatenation"). ensureChunk transparently advances across chunk
// boundaries so Read and SeekForward see one continuous byte stream
// regardless of framing.
type blobReader struct {
	src        io.Reader
	kindVal    kind.Kind
	major      byte
	indefinite bool
	remaining  int64
	done       bool
	closed     bool
}

// ensureChunk guarantees that, on return, either done is true (no more
// bytes anywhere in this blob) or remaining > 0 (at least one byte is
// available without another header read). It transparently skips
// zero-length chunks and decodes chunk headers for indefinite blobs.
func (b *blobReader) ensureChunk() error {
	for !b.done && b.remaining == 0 {
		if !b.indefinite {
			b.done = true
			break
		}
		h, err := readHead(b.src)
		if err != nil {
			return err
		}
		if h.isBreak() {
			b.done = true
			break
		}
		if h.major != b.major || h.indefinite() {
			return goldfisherr.New(goldfisherr.IllFormed, "indefinite %s: chunk is not a definite same-type item", b.kindVal)
		}
		b.remaining = int64(h.arg)
	}
	return nil
}

func (b *blobReader) Read(p []byte) (int, error) {
	if b.closed {
		return 0, io.EOF
	}
	total := 0
	for total < len(p) {
		if err := b.ensureChunk(); err != nil {
			return total, err
		}
		if b.done {
			break
		}
		q := p[total:]
		if int64(len(q)) > b.remaining {
			q = q[:b.remaining]
		}
		n, err := b.src.Read(q)
		b.remaining -= int64(n)
		total += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, goldfisherr.New(goldfisherr.IllFormed, "source ended inside a %s chunk", b.kindVal)
			}
			return total, goldfisherr.Wrap(goldfisherr.IO, "reading blob bytes", err)
		}
	}
	if total == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return total, nil
}

func (b *blobReader) SeekForward(n int64) (int64, error) {
	if b.closed {
		return 0, nil
	}
	var discarded int64
	for discarded < n {
		if err := b.ensureChunk(); err != nil {
			return discarded, err
		}
		if b.done {
			break
		}
		want := n - discarded
		if want > b.remaining {
			want = b.remaining
		}
		d, err := stream.SeekForward(b.src, want)
		b.remaining -= d
		discarded += d
		if err != nil {
			return discarded, err
		}
		if d < want {
			break
		}
	}
	return discarded, nil
}

// Close discards any unread chunks, including the terminating break of
// an indefinite blob, and is idempotent.
func (b *blobReader) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	for {
		if err := b.ensureChunk(); err != nil {
			return err
		}
		if b.done {
			return nil
		}
		d, err := stream.SeekForward(b.src, b.remaining)
		b.remaining -= d
		if err != nil {
			return err
		}
		if b.remaining > 0 {
			return goldfisherr.New(goldfisherr.IllFormed, "source ended while discarding a %s chunk", b.kindVal)
		}
	}
}
