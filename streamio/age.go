package streamio

import (
	"io"

	"filippo.io/age"

	"github.com/streamcodec/goldfish/stream"
)

// AgeSource decrypts an age-encrypted byte stream, the same
// filippo.io/age decryption call bureau's lib/sealed package wraps for
// whole-buffer credential bundles, used here as a streaming transport
// instead.
type AgeSource struct {
	io.Reader
}

// NewAgeSource wraps r, which must hold a complete age ciphertext
// readable with one of the given identities.
func NewAgeSource(r io.Reader, identities ...age.Identity) (*AgeSource, error) {
	plain, err := age.Decrypt(r, identities...)
	if err != nil {
		return nil, err
	}
	return &AgeSource{plain}, nil
}

var _ stream.Source = (*AgeSource)(nil)

// AgeSink encrypts writes into an age-encrypted byte stream for the
// given recipients. age buffers the payload until Close, so unlike
// GzipSink and LZ4Sink, Flush here has no sync point to force.
type AgeSink struct {
	w io.WriteCloser
}

// NewAgeSink wraps w, writing the age header immediately.
func NewAgeSink(w io.Writer, recipients ...age.Recipient) (*AgeSink, error) {
	enc, err := age.Encrypt(w, recipients...)
	if err != nil {
		return nil, err
	}
	return &AgeSink{w: enc}, nil
}

func (s *AgeSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *AgeSink) Flush() error                { return nil }
func (s *AgeSink) Close() error                { return s.w.Close() }

var _ stream.Sink = (*AgeSink)(nil)
