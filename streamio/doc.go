// Package streamio adapts compressed transports to the plain
// stream.Source/stream.Sink contract package cbor and jsonstream pull
// from and push to, so a GoldFish document can be read from or
// written to a gzip- or lz4-framed byte stream without either codec
// package knowing compression exists (spec §6 draws the source/sink
// boundary exactly there). Adapters that only need the standard
// library live in package stream instead; these need a third-party
// codec, which is why they live here.
package streamio
