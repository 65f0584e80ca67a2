package jsonstream

import (
	"io"

	"github.com/streamcodec/goldfish/goldfisherr"
	"github.com/streamcodec/goldfish/stream"
)

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// skipSpace discards insignificant whitespace (RFC 8259 §2), leaving
// the next significant byte, if any, unconsumed.
func skipSpace(src stream.PeekSource) error {
	for {
		b, err := src.Peek()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return goldfisherr.Wrap(goldfisherr.IO, "reading source", err)
		}
		if !isSpace(b) {
			return nil
		}
		if err := consumeByte(src); err != nil {
			return err
		}
	}
}

// consumeByte discards exactly one byte, the one a caller has just peeked.
func consumeByte(src io.Reader) error {
	var buf [1]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return goldfisherr.Wrap(goldfisherr.EOF, "unexpected end of input", err)
	}
	return nil
}

// peek returns the next byte without consuming it, classifying a
// clean end-of-source as goldfisherr.EOF rather than returning io.EOF
// directly — every caller in this package treats "nothing more to
// read" as a sequencing failure once it has committed to expecting a
// byte (spec §4.2 "EOF mid-item").
func peek(src stream.PeekSource) (byte, error) {
	b, err := src.Peek()
	if err != nil {
		if err == io.EOF {
			return 0, goldfisherr.Wrap(goldfisherr.EOF, "unexpected end of input", err)
		}
		return 0, goldfisherr.Wrap(goldfisherr.IO, "reading source", err)
	}
	return b, nil
}

// consumeLiteral consumes exactly the bytes of lit, which the caller
// has already peeked the first byte of.
func consumeLiteral(src stream.PeekSource, lit string) error {
	buf := make([]byte, len(lit))
	if _, err := io.ReadFull(src, buf); err != nil {
		return goldfisherr.Wrap(goldfisherr.EOF, "unexpected end of input", err)
	}
	if string(buf) != lit {
		return goldfisherr.New(goldfisherr.IllFormed, "invalid literal, expected %q", lit)
	}
	return nil
}
