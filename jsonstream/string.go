package jsonstream

import (
	"io"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/kind"
	"github.com/streamcodec/goldfish/stream"
)

// stringItemReader is the document.Reader for a JSON string: Blob is
// the only accessor that succeeds.
type stringItemReader struct {
	containerReaderBase
	blob *stringBlobReader
}

// newStringReader consumes the opening quote and returns a document
// whose Blob streams the unescaped content (spec §3.3, §4.3).
func newStringReader(src stream.PeekSource) (document.Reader, error) {
	if err := consumeByte(src); err != nil {
		return nil, err
	}
	return stringItemReader{containerReaderBase{kind.String}, &stringBlobReader{src: src}}, nil
}

func (r stringItemReader) Blob() (document.BlobReader, error) { return r.blob, nil }
func (r stringItemReader) Array() (document.ArrayReader, error) {
	return nil, mismatch(r.Kind())
}
func (r stringItemReader) Map() (document.MapReader, error) {
	return nil, mismatch(r.Kind())
}

// stringBlobReader decodes a quoted JSON string's escapes lazily, one
// decoded chunk at a time, so Read sees a plain continuous run of
// UTF-8 bytes regardless of how the source interleaves literal runs
// and \uXXXX escapes.
type stringBlobReader struct {
	src     stream.PeekSource
	pending []byte
	done    bool
	closed  bool
}

func (s *stringBlobReader) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.src, buf[:]); err != nil {
		return 0, goldfisherr.New(goldfisherr.IllFormed, "unterminated JSON string")
	}
	return buf[0], nil
}

func (s *stringBlobReader) fill() error {
	for !s.done && len(s.pending) == 0 {
		b, err := s.readByte()
		if err != nil {
			return err
		}
		switch b {
		case '"':
			s.done = true
		case '\\':
			if err := s.decodeEscape(); err != nil {
				return err
			}
		default:
			s.pending = append(s.pending, b)
		}
	}
	return nil
}

func (s *stringBlobReader) decodeEscape() error {
	c, err := s.readByte()
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/':
		s.pending = append(s.pending, c)
	case 'b':
		s.pending = append(s.pending, '\b')
	case 'f':
		s.pending = append(s.pending, '\f')
	case 'n':
		s.pending = append(s.pending, '\n')
	case 'r':
		s.pending = append(s.pending, '\r')
	case 't':
		s.pending = append(s.pending, '\t')
	case 'u':
		r1, err := s.readHex4()
		if err != nil {
			return err
		}
		r := rune(r1)
		if utf16.IsSurrogate(r) {
			if b, err := s.readByte(); err != nil || b != '\\' {
				return goldfisherr.New(goldfisherr.IllFormed, "lone UTF-16 surrogate in string escape")
			}
			if b, err := s.readByte(); err != nil || b != 'u' {
				return goldfisherr.New(goldfisherr.IllFormed, "lone UTF-16 surrogate in string escape")
			}
			r2, err := s.readHex4()
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, rune(r2))
			if r == utf8.RuneError {
				return goldfisherr.New(goldfisherr.IllFormed, "invalid UTF-16 surrogate pair in string escape")
			}
		}
		s.pending = utf8.AppendRune(s.pending, r)
	default:
		return goldfisherr.New(goldfisherr.IllFormed, "invalid escape \\%c", c)
	}
	return nil
}

func (s *stringBlobReader) readHex4() (uint16, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.src, buf[:]); err != nil {
		return 0, goldfisherr.New(goldfisherr.IllFormed, "unterminated \\u escape")
	}
	v, err := strconv.ParseUint(string(buf[:]), 16, 16)
	if err != nil {
		return 0, goldfisherr.New(goldfisherr.IllFormed, "invalid \\u escape %q", buf[:])
	}
	return uint16(v), nil
}

func (s *stringBlobReader) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if err := s.fill(); err != nil {
				return n, err
			}
			if len(s.pending) == 0 {
				break
			}
		}
		k := copy(p[n:], s.pending)
		s.pending = s.pending[k:]
		n += k
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *stringBlobReader) SeekForward(n int64) (int64, error) {
	var discarded int64
	var buf [4096]byte
	for discarded < n {
		want := n - discarded
		if want > int64(len(buf)) {
			want = int64(len(buf))
		}
		k, err := s.Read(buf[:want])
		discarded += int64(k)
		if err != nil {
			if err == io.EOF {
				break
			}
			return discarded, err
		}
		if k == 0 {
			break
		}
	}
	return discarded, nil
}

func (s *stringBlobReader) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for !s.done {
		s.pending = s.pending[:0]
		if err := s.fill(); err != nil {
			return err
		}
	}
	return nil
}
