// Package cbor implements GoldFish's binary format: the CBOR subset
// described by spec §4.2/§4.4 and §6.3 (RFC 8949 major-type framing,
// restricted to the items, lengths, and simple values the abstract
// document model needs).
//
// The decoder and encoder here are hand-written rather than built on
// top of a third-party CBOR library, because the streaming
// parent/child reader and writer state machine — lazy decoding,
// indefinite-chunk transparency, definite-vs-indefinite framing
// selection — is exactly the hard engineering this module exists to
// own (spec §1 "THE CORE"). A production-grade CBOR implementation,
// fxamacker/cbor/v2 (the library bureau's lib/codec package wraps),
// is used instead as a cross-validation oracle in this package's test
// suite: two oracle tests check this package's reader and writer
// against what a standards-track decoder and encoder make of the same
// values and bytes, the same role
// bureau's "bureau cbor diag" tool plays for manual inspection.
package cbor
