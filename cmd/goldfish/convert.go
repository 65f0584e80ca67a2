package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/streamcodec/goldfish/debugcheck"
	"github.com/streamcodec/goldfish/document"
)

func runConvert(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	from := fs.String("from", "cbor", "input codec: cbor or json")
	to := fs.String("to", "json", "output codec: cbor or json")
	inputCompress := fs.String("input-compress", "", "input transform: gzip, lz4, age, or empty")
	outputCompress := fs.String("output-compress", "", "output transform: gzip, lz4, age, or empty")
	inputIdentity := fs.String("input-age-identity", "", "age private key, required when --input-compress=age")
	outputRecipient := fs.String("output-age-recipient", "", "age public key, required when --output-compress=age")
	inPath := fs.String("in", "-", "input file, or - for stdin")
	outPath := fs.String("out", "-", "output file, or - for stdout")
	checked := fs.Bool("checked", false, "wrap the reader and writer in debugcheck to catch sequencing misuse")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	in, closeIn, err := openInput(*inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := createOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	src, srcCloser, err := wrapCompression(*inputCompress, in, *inputIdentity)
	if err != nil {
		return err
	}
	if srcCloser != nil {
		defer srcCloser.Close()
	}

	sink, sinkCloser, err := wrapCompressionWriter(*outputCompress, out, *outputRecipient)
	if err != nil {
		return err
	}

	reader, err := openReader(*from, src)
	if err != nil {
		return err
	}

	writer, err := newWriter(*to, sink)
	if err != nil {
		return err
	}

	if *checked {
		reader = debugcheck.NewReader(reader, logger)
		writer = debugcheck.NewWriter(writer, logger)
	}

	if err := document.Copy(reader, writer); err != nil {
		return fmt.Errorf("converting %s to %s: %w", *from, *to, err)
	}

	if sinkCloser != nil {
		if err := sinkCloser.Close(); err != nil {
			return fmt.Errorf("flushing %s output: %w", *outputCompress, err)
		}
	}
	return nil
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func createOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
