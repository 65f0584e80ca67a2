// Package document defines the abstract document model shared by
// GoldFish's binary and JSON codecs (spec §3, §4.1). A document is a
// single self-describing item: a scalar value, or a streamed blob,
// array, or map whose contents are pulled lazily from the same
// underlying byte stream as its parent.
//
// This package owns three things:
//
//   - the closed set of interfaces a codec's reader-side and
//     writer-side types must satisfy ([Reader], [Writer], and their
//     container/blob counterparts) — the Go analogue of the
//     original variant<...>-based tagged union, dispatched here with
//     an ordinary switch on [kind.Kind] rather than a vtable,
//     since Go has no way to pack a discriminant into struct padding
//     and no reason to hand-roll one;
//   - [Value], the inline scalar payload six of the ten kinds carry
//     directly;
//   - [Copy], the SAX-to-SAX engine that drives any Writer from any
//     Reader without materializing the document, grounded directly on
//     the original copy_sax_document/copy_stream pair.
package document
