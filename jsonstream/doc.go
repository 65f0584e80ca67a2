// Package jsonstream implements GoldFish's text format: a pull-based
// reader and writer for the JSON subset described by spec §4.3/§4.4 —
// null, booleans, numbers (kind inferred from shape and magnitude),
// strings, arrays, and objects whose keys are strings.
//
// Like package cbor, the parser and printer here are hand-written:
// byte-at-a-time lexing and escaping are exactly the state machine
// this module exists to own (spec §1 "THE CORE"), not something to
// delegate to encoding/json or a third-party JSON library. The
// escaping and number-formatting rules are adapted from the
// approach go-json-experiment/json's internal/jsonwire package takes
// to RFC 8259 string and number formatting, reimplemented directly
// against this package's streaming Source/Sink rather than imported.
package jsonstream
