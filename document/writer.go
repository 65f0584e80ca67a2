package document

import "io"

// Indefinite, passed as a length/count to Writer.WriteBinary,
// WriteString, WriteArray, or WriteMap, requests indefinite framing:
// the item's length is not declared up front and the writer must
// terminate it explicitly by closing the returned child (spec §3.5,
// §4.4).
const Indefinite = -1

// Writer is a single document on the write side: a sink for exactly
// one item. A codec's format writer (cbor.Writer, jsonstream.Writer)
// and every child ArrayWriter.Append/MapWriter.AppendKey/AppendValue
// return one of these per item.
type Writer interface {
	// WriteValue writes one of the six inline scalar kinds.
	WriteValue(v Value) error

	// WriteNull writes the Null scalar.
	WriteNull() error
	// WriteUndefined writes the Undefined scalar.
	WriteUndefined() error
	// WriteBool writes a Bool scalar.
	WriteBool(v bool) error
	// WriteUint writes an Uint scalar.
	WriteUint(v uint64) error
	// WriteInt writes a Int scalar.
	WriteInt(v int64) error
	// WriteFloat writes a Float scalar.
	WriteFloat(v float64) error

	// WriteBinary opens a Binary child. length >= 0 requests definite
	// framing of exactly that many bytes; length == Indefinite requests
	// indefinite framing, terminated by Close.
	WriteBinary(length int64) (BlobWriter, error)

	// WriteString opens a String child, with the same framing rules as WriteBinary.
	WriteString(length int64) (BlobWriter, error)

	// WriteArray opens an Array child. count >= 0 requests definite
	// framing of exactly that many elements; count == Indefinite
	// requests indefinite framing, terminated by Close.
	WriteArray(count int64) (ArrayWriter, error)

	// WriteMap opens a Map child, with the same framing rules as WriteArray.
	WriteMap(count int64) (MapWriter, error)
}

// BlobWriter is the child writer returned by WriteBinary/WriteString.
// Each Write call appends bytes; in indefinite framing, each call
// additionally becomes its own chunk in the wire encoding (spec
// §4.4). Close flushes: for definite framing it verifies the declared
// length was met exactly; for indefinite framing it emits the
// terminating break.
type BlobWriter interface {
	io.Writer

	// Close finalizes the blob (spec §3.6 "writers... require
	// explicit flush"). It is not safe to call Write after Close.
	Close() error
}

// ArrayWriter is the child writer returned by WriteArray. Between
// WriteArray and Close, only Append calls occur (spec §3.5).
type ArrayWriter interface {
	// Append opens the writer for the next element.
	Append() (Writer, error)

	// Close finalizes the array.
	Close() error
}

// MapWriter is the child writer returned by WriteMap. Key and value
// writers alternate strictly: AppendKey, AppendValue, AppendKey, ...
// (spec §3.5).
type MapWriter interface {
	// AppendKey opens the writer for the next key.
	AppendKey() (Writer, error)

	// AppendValue opens the writer for the value paired with the most
	// recent key from AppendKey.
	AppendValue() (Writer, error)

	// Close finalizes the map.
	Close() error
}
