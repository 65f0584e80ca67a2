package cbor

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/streamcodec/goldfish/goldfisherr"
)

// Major types (spec §4.2).
const (
	majorUint   byte = 0
	majorInt    byte = 1
	majorBinary byte = 2
	majorString byte = 3
	majorArray  byte = 4
	majorMap    byte = 5
	majorTag    byte = 6
	majorSimple byte = 7
)

// Additional-info values with fixed meaning for majorSimple.
const (
	aiFalse       byte = 20
	aiTrue        byte = 21
	aiNull        byte = 22
	aiUndefined   byte = 23
	aiFloat16     byte = 25
	aiFloat32     byte = 26
	aiFloat64     byte = 27
	aiIndefinite  byte = 31
)

// breakByte is the sentinel that terminates an indefinite container or
// blob (spec §4.2, §6.3: "Breaks (0xff) are reserved").
const breakByte byte = 0xff

// head is a decoded item header: the major type, the raw additional
// info, and the decoded length/value field (spec §4.2 "additional
// info >= 24 signals a 1/2/4/8-byte big-endian length field").
type head struct {
	major byte
	info  byte
	arg   uint64
}

// indefinite reports whether this head signals indefinite framing
// (additional info 31) rather than carrying a definite length/count/value.
func (h head) indefinite() bool { return h.info == aiIndefinite }

// isBreak reports whether this head is the break sentinel (major 7,
// additional info 31).
func (h head) isBreak() bool { return h.major == majorSimple && h.info == aiIndefinite }

// readHead decodes one item header from r.
func readHead(r io.Reader) (head, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return head{}, ioOrEOF(err)
	}

	major := b[0] >> 5
	info := b[0] & 0x1f

	switch {
	case info < 24:
		return head{major: major, info: info, arg: uint64(info)}, nil
	case info == 24:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return head{}, ioOrEOF(err)
		}
		return head{major: major, info: info, arg: uint64(buf[0])}, nil
	case info == 25:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return head{}, ioOrEOF(err)
		}
		return head{major: major, info: info, arg: uint64(binary.BigEndian.Uint16(buf[:]))}, nil
	case info == 26:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return head{}, ioOrEOF(err)
		}
		return head{major: major, info: info, arg: uint64(binary.BigEndian.Uint32(buf[:]))}, nil
	case info == 27:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return head{}, ioOrEOF(err)
		}
		return head{major: major, info: info, arg: binary.BigEndian.Uint64(buf[:])}, nil
	case info == 31:
		return head{major: major, info: info}, nil
	default: // 28, 29, 30: reserved
		return head{}, goldfisherr.New(goldfisherr.IllFormed, "reserved additional info %d", info)
	}
}

// ioOrEOF classifies an I/O failure: any EOF, whether at an item's
// first byte or mid-header, is "unexpected end of source" with code
// EOF (spec §4.2 "EOF mid-item"); every other failure is IO.
// Containers end by their count or break byte, never by source EOF.
func ioOrEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return goldfisherr.Wrap(goldfisherr.EOF, "unexpected end of source", err)
	}
	return goldfisherr.Wrap(goldfisherr.IO, "reading byte stream", err)
}

// appendHead appends the minimal-width encoding of a definite
// length/count/value field for the given major type (spec §4.4
// "Number encoding chooses the smallest width that fits").
func appendHead(dst []byte, major byte, value uint64) []byte {
	switch {
	case value < 24:
		return append(dst, major<<5|byte(value))
	case value <= 0xff:
		return append(dst, major<<5|24, byte(value))
	case value <= 0xffff:
		dst = append(dst, major<<5|25)
		return binary.BigEndian.AppendUint16(dst, uint16(value))
	case value <= 0xffffffff:
		dst = append(dst, major<<5|26)
		return binary.BigEndian.AppendUint32(dst, uint32(value))
	default:
		dst = append(dst, major<<5|27)
		return binary.BigEndian.AppendUint64(dst, value)
	}
}

// appendIndefiniteHead appends the header for an indefinite-length item.
func appendIndefiniteHead(dst []byte, major byte) []byte {
	return append(dst, major<<5|aiIndefinite)
}
