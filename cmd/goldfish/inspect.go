package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/streamcodec/goldfish/debugcheck"
	"github.com/streamcodec/goldfish/document"
	"github.com/streamcodec/goldfish/kind"
)

// kindStyles colors each item kind distinctly, the same per-category
// styling ticketui uses for ticket status and priority: one
// lipgloss.Style built once per kind rather than per row.
var kindStyles = map[kind.Kind]lipgloss.Style{
	kind.Null:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	kind.Undefined: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	kind.Bool:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	kind.Uint:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	kind.Int:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	kind.Float:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	kind.Binary:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	kind.String:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	kind.Array:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	kind.Map:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
}

func styleFor(k kind.Kind, color bool) lipgloss.Style {
	if !color {
		return lipgloss.NewStyle()
	}
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// colorEnabled mirrors cli.NewCommandLogger's terminal check: colorize
// only when stdout is a terminal, and always honor NO_COLOR.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runInspect(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	from := fs.String("from", "cbor", "input codec: cbor or json")
	inputCompress := fs.String("input-compress", "", "input transform: gzip, lz4, age, or empty")
	inputIdentity := fs.String("input-age-identity", "", "age private key, required when --input-compress=age")
	inPath := fs.String("in", "-", "input file, or - for stdin")
	checked := fs.Bool("checked", true, "wrap the reader in debugcheck while walking it")

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
	if *checked {
		reader = debugcheck.NewReader(reader, logger)
	}

	return inspectItem(os.Stdout, reader, 0, "", colorEnabled())
}

func inspectItem(out *os.File, r document.Reader, depth int, label string, color bool) error {
	indent := indentFor(depth)
	k := r.Kind()
	style := styleFor(k, color)

	switch {
	case k.IsScalar():
		v, err := r.Scalar()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s%s\n", indent, label, style.Render(scalarText(v)))
		return nil

	case k.IsBlob():
		b, err := r.Blob()
		if err != nil {
			return err
		}
		defer b.Close()
		data, err := document.ReadAll(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s%s\n", indent, label, style.Render(blobText(k, data)))
		return nil

	case k == kind.Array:
		a, err := r.Array()
		if err != nil {
			return err
		}
		defer a.Close()
		fmt.Fprintf(out, "%s%s%s\n", indent, label, style.Render("["))
		for i := 0; ; i++ {
			elem, err := a.Next()
			if err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			if err := inspectItem(out, elem, depth+1, fmt.Sprintf("%d: ", i), color); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s%s\n", indent, style.Render("]"))
		return nil

	case k == kind.Map:
		m, err := r.Map()
		if err != nil {
			return err
		}
		defer m.Close()
		fmt.Fprintf(out, "%s%s%s\n", indent, label, style.Render("{"))
		for {
			key, err := m.NextKey()
			if err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			keyText, err := renderKey(key)
			if err != nil {
				return err
			}
			value, err := m.Value()
			if err != nil {
				return err
			}
			if err := inspectItem(out, value, depth+1, keyText+": ", color); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s%s\n", indent, style.Render("}"))
		return nil

	default:
		return fmt.Errorf("inspect: unhandled kind %s", k)
	}
}

func indentFor(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func scalarText(v document.Value) string {
	switch v.Kind {
	case kind.Null:
		return "null"
	case kind.Undefined:
		return "undefined"
	case kind.Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case kind.Uint:
		return fmt.Sprintf("%d", v.Uint)
	case kind.Int:
		return fmt.Sprintf("%d", v.Int)
	case kind.Float:
		return fmt.Sprintf("%g", v.Float)
	default:
		return "?"
	}
}

func blobText(k kind.Kind, data []byte) string {
	if k == kind.String {
		return fmt.Sprintf("%q", string(data))
	}
	return fmt.Sprintf("<%d bytes>", len(data))
}

func renderKey(r document.Reader) (string, error) {
	if r.Kind() != kind.String {
		return scalarKeyText(r)
	}
	b, err := r.Blob()
	if err != nil {
		return "", err
	}
	defer b.Close()
	data, err := document.ReadAll(b)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func scalarKeyText(r document.Reader) (string, error) {
	v, err := r.Scalar()
	if err != nil {
		return "", err
	}
	return scalarText(v), nil
}
