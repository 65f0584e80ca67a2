package document

import (
	"errors"
	"fmt"
	"io"

	"github.com/streamcodec/goldfish/kind"
)

// copyBufferSize is the stack-sized scratch buffer used to stream
// blobs during Copy, matching the original copy_stream's 8 KiB buffer
// (spec §4.6, §5 "Buffers for blob copy are stack-sized (8 KiB)").
const copyBufferSize = 8 * 1024

// Copy walks r, a document of any kind from any codec, and drives w,
// a writer of any codec, reproducing the document without
// materializing containers or blobs in memory. This is GoldFish's
// SAX-to-SAX copy engine (spec §4.6), grounded directly on the
// original copy_sax_document/copy_stream pair: scalars are written
// directly, blobs are re-framed from 8 KiB pulls (a short pull means
// the blob fit in one chunk and gets definite framing; otherwise it
// gets indefinite framing with one chunk per pull), and containers
// recurse element by element.
func Copy(r Reader, w Writer) error {
	switch k := r.Kind(); k {
	case kind.Null, kind.Undefined, kind.Bool, kind.Uint, kind.Int, kind.Float:
		v, err := r.Scalar()
		if err != nil {
			return err
		}
		return w.WriteValue(v)

	case kind.Binary:
		b, err := r.Blob()
		if err != nil {
			return err
		}
		return copyBlob(b, w.WriteBinary)

	case kind.String:
		b, err := r.Blob()
		if err != nil {
			return err
		}
		return copyBlob(b, w.WriteString)

	case kind.Array:
		a, err := r.Array()
		if err != nil {
			return err
		}
		return copyArray(a, w)

	case kind.Map:
		m, err := r.Map()
		if err != nil {
			return err
		}
		return copyMap(m, w)

	default:
		return fmt.Errorf("document: copy: unhandled kind %s", k)
	}
}

// copyBlob pulls b in copyBufferSize chunks and re-emits it through
// open, which is either Writer.WriteBinary or Writer.WriteString.
func copyBlob(b BlobReader, open func(length int64) (BlobWriter, error)) error {
	defer b.Close()

	var buf [copyBufferSize]byte
	n, err := readFull(b, buf[:])
	if err != nil {
		return err
	}

	if n < len(buf) {
		// The entire blob fit in one pull: we know its exact size, so
		// use definite framing.
		out, err := open(int64(n))
		if err != nil {
			return err
		}
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return err
			}
		}
		return out.Close()
	}

	// The blob is larger than one buffer: switch to indefinite framing,
	// one wire chunk per pull, terminating on the first short pull.
	out, err := open(Indefinite)
	if err != nil {
		return err
	}
	if _, err := out.Write(buf[:n]); err != nil {
		return err
	}
	for {
		n, err = readFull(b, buf[:])
		if err != nil {
			return err
		}
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return err
			}
		}
		if n < len(buf) {
			break
		}
	}
	return out.Close()
}

// readFull pulls from r until buf is full or a short read is observed,
// matching the original's stream::read_buffer semantics: the return
// count is less than len(buf) exactly at end-of-blob.
func readFull(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

func copyArray(a ArrayReader, w Writer) error {
	defer a.Close()

	out, err := w.WriteArray(Indefinite)
	if err != nil {
		return err
	}
	for {
		elem, err := a.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		elemWriter, err := out.Append()
		if err != nil {
			return err
		}
		if err := Copy(elem, elemWriter); err != nil {
			return err
		}
	}
	return out.Close()
}

func copyMap(m MapReader, w Writer) error {
	defer m.Close()

	out, err := w.WriteMap(Indefinite)
	if err != nil {
		return err
	}
	for {
		key, err := m.NextKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		keyWriter, err := out.AppendKey()
		if err != nil {
			return err
		}
		if err := Copy(key, keyWriter); err != nil {
			return err
		}

		value, err := m.Value()
		if err != nil {
			return err
		}
		valueWriter, err := out.AppendValue()
		if err != nil {
			return err
		}
		if err := Copy(value, valueWriter); err != nil {
			return err
		}
	}
	return out.Close()
}
