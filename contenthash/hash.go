// Package contenthash content-addresses a GoldFish document: the same
// abstract value, read from any codec, hashes to the same digest,
// because hashing canonicalizes through the binary format's own SAX
// copy engine rather than hashing raw wire bytes (spec §4.6's Copy is
// exactly the canonicalization step this needs).
//
// Grounded on bureau's lib/artifact package: a fixed-size Hash type, a
// BLAKE3 keyed hash for domain separation so a GoldFish document hash
// can never collide with a hash computed for an unrelated purpose
// elsewhere in a host application, and a hex Hash.String/Parse pair
// for the string form used in logs and CLI output.
package contenthash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/streamcodec/goldfish/cbor"
	"github.com/streamcodec/goldfish/document"
)

// Hash is a 32-byte BLAKE3 digest of a document's canonical binary encoding.
type Hash [32]byte

// domainKey separates GoldFish document hashes from BLAKE3 hashes
// computed for any other purpose in the same process.
var domainKey = [32]byte{
	'g', 'o', 'l', 'd', 'f', 'i', 's', 'h', '.', 'd', 'o', 'c', 'u', 'm', 'e', 'n', 't',
}

// Of hashes r: its content, not its wire representation. Copying the
// same document through package jsonstream and hashing the result
// with Of yields the same Hash as hashing it straight out of package
// cbor, because both runs drive the same deterministic binary
// encoding through document.Copy.
func Of(r document.Reader) (Hash, error) {
	hasher, err := blake3.NewKeyed(domainKey[:])
	if err != nil {
		return Hash{}, fmt.Errorf("contenthash: initializing hasher: %w", err)
	}
	if err := document.Copy(r, cbor.NewWriter(hasher)); err != nil {
		return Hash{}, fmt.Errorf("contenthash: canonicalizing document: %w", err)
	}
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h, nil
}

// String returns the hex-encoded form of h, the canonical format for
// logs and CLI output.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Parse parses a 64-character hex string into a Hash.
func Parse(s string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("contenthash: parsing hash: %w", err)
	}
	if len(decoded) != len(h) {
		return h, fmt.Errorf("contenthash: hash must be %d bytes, got %d", len(h), len(decoded))
	}
	copy(h[:], decoded)
	return h, nil
}
