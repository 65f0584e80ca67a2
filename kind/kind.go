// Package kind defines the ten item kinds of the GoldFish abstract
// document model. Every reader-side and writer-side document carries
// exactly one Kind, fixed at creation (it never changes — spec §3.5).
package kind

// Kind discriminates the abstract model's item kinds. It is the Go
// stand-in for the single-byte discriminant described in the original
// variant<...> design: a plain enum is sufficient here since Go has no
// tail-padding to pack it into, and a separate byte costs nothing next
// to the interface values the reader/writer handles already carry.
type Kind uint8

const (
	// Null is the singleton null value.
	Null Kind = iota
	// Bool is a single bit.
	Bool
	// Uint is a 64-bit non-negative integer.
	Uint
	// Int is a 64-bit two's-complement integer, used only for negative values.
	Int
	// Float is an IEEE 754 double.
	Float
	// Undefined is a distinguished absent-value marker, distinct from Null.
	Undefined
	// Binary is an opaque, streamed byte blob.
	Binary
	// String is a streamed UTF-8 text blob.
	String
	// Array is a streamed ordered sequence of documents.
	Array
	// Map is a streamed ordered sequence of key/value document pairs.
	Map

	// Invalid is the reserved discriminant for a moved-from or
	// not-yet-initialized handle. It is never a valid Kind of a live
	// document and is never dispatched by Scalar's Visit.
	Invalid
)

// numKinds is the count of real (non-Invalid) kinds.
const numKinds = int(Invalid)

var names = [...]string{
	Null:      "null",
	Bool:      "boolean",
	Uint:      "unsigned_int",
	Int:       "signed_int",
	Float:     "floating_point",
	Undefined: "undefined",
	Binary:    "binary",
	String:    "string",
	Array:     "array",
	Map:       "map",
	Invalid:   "invalid",
}

// String returns the spec name of the kind (e.g. "unsigned_int").
func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "invalid"
}

// IsScalar reports whether k is one of the six inline-value kinds.
func (k Kind) IsScalar() bool {
	return k <= Undefined
}

// IsContainer reports whether k is Array or Map.
func (k Kind) IsContainer() bool {
	return k == Array || k == Map
}

// IsBlob reports whether k is Binary or String.
func (k Kind) IsBlob() bool {
	return k == Binary || k == String
}
