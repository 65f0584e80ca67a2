package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/streamcodec/goldfish/contenthash"
)

func runHash(args []string) error {
	fs := pflag.NewFlagSet("hash", pflag.ContinueOnError)
	from := fs.String("from", "cbor", "input codec: cbor or json")
	inputCompress := fs.String("input-compress", "", "input transform: gzip, lz4, age, or empty")
	inputIdentity := fs.String("input-age-identity", "", "age private key, required when --input-compress=age")
	inPath := fs.String("in", "-", "input file, or - for stdin")

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

	src, srcCloser, err := wrapCompression(*inputCompress, in, *inputIdentity)
	if err != nil {
		return err
	}
	if srcCloser != nil {
		defer srcCloser.Close()
	}

	reader, err := openReader(*from, src)
	if err != nil {
		return err
	}

	h, err := contenthash.Of(reader)
	if err != nil {
		return fmt.Errorf("hashing document: %w", err)
	}
	fmt.Println(h.String())
	return nil
}
