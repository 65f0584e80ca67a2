// Command goldfish converts, inspects, and content-hashes GoldFish
// documents from the command line: a small diagnostic tool in the
// same spirit as bureau's "bureau cbor" subcommand, built directly on
// this module's public packages rather than on bureau's own cmd/bureau/
// cli framework, which is internal to that repository.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "goldfish: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:], newLogger())
	case "inspect":
		return runInspect(args[1:], newLogger())
	case "hash":
		return runHash(args[1:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("GOLDFISH_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: goldfish <command> [flags]

commands:
  convert   transcode a document between the binary and text formats
  inspect   print a document's structure to stdout
  hash      print a document's content hash

Run "goldfish <command> --help" for flags specific to a command.`)
}
