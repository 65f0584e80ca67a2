package main

import (
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/streamcodec/goldfish/cbor"
	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/jsonstream"
	"github.com/streamcodec/goldfish/stream"
	"github.com/streamcodec/goldfish/streamio"
)

// openReader constructs a document.Reader for the named codec over
// src. name is one of "cbor" or "json".
func openReader(name string, src io.Reader) (document.Reader, error) {
	switch name {
	case "cbor":
		return cbor.NewReader(src)
	case "json":
		return jsonstream.NewReader(stream.NewPeekSource(src))
	default:
		return nil, fmt.Errorf("unknown codec %q (want cbor or json)", name)
	}
}

// newWriter constructs a document.Writer for the named codec over sink.
func newWriter(name string, sink io.Writer) (document.Writer, error) {
	switch name {
	case "cbor":
		return cbor.NewWriter(sink), nil
	case "json":
		return jsonstream.NewWriter(sink), nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want cbor or json)", name)
	}
}

// wrapCompression wraps src according to the named transform, one of
// "", "gzip", "lz4", or "age". identity is the age private key
// (AGE-SECRET-KEY-1...) and is ignored by the other transforms.
func wrapCompression(name string, src io.Reader, identity string) (io.Reader, io.Closer, error) {
	switch name {
	case "", "none":
		return src, nil, nil
	case "gzip":
		s, err := streamio.NewGzipSource(src)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return s, s, nil
	case "lz4":
		s := streamio.NewLZ4Source(src)
		return s, nil, nil
	case "age":
		id, err := age.ParseX25519Identity(identity)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing age identity: %w", err)
		}
		s, err := streamio.NewAgeSource(src, id)
		if err != nil {
			return nil, nil, fmt.Errorf("opening age stream: %w", err)
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown transform %q (want gzip, lz4, or age)", name)
	}
}

// wrapCompressionWriter wraps sink according to the named transform.
// The returned io.Closer must be closed before the underlying sink,
// flushing the gzip footer, lz4 frame trailer, or age MAC. recipient
// is the age public key (age1...) and is ignored by the other
// transforms.
func wrapCompressionWriter(name string, sink io.Writer, recipient string) (io.Writer, io.Closer, error) {
	switch name {
	case "", "none":
		return sink, nil, nil
	case "gzip":
		s := streamio.NewGzipSink(sink)
		return s, s, nil
	case "lz4":
		s := streamio.NewLZ4Sink(sink)
		return s, s, nil
	case "age":
		r, err := age.ParseX25519Recipient(recipient)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing age recipient: %w", err)
		}
		s, err := streamio.NewAgeSink(sink, r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening age stream: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown transform %q (want gzip, lz4, or age)", name)
	}
}
