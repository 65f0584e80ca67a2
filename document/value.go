package document

import "github.com/streamcodec/goldfish/kind"

// Value is the inline payload of a scalar document: Null, Bool, Uint,
// Int, Float, or Undefined (spec §3.1). Only the field matching Kind
// is meaningful. Values are plain, copyable data — spec §3.2 draws
// the line between copyable scalars and move-only sub-reader/writer
// handles exactly here.
type Value struct {
	Kind  kind.Kind
	Bool  bool
	Uint  uint64
	Int   int64
	Float float64
}

// Null returns the Null scalar value.
func Null() Value { return Value{Kind: kind.Null} }

// Undefined returns the Undefined scalar value.
func Undefined() Value { return Value{Kind: kind.Undefined} }

// OfBool returns a Bool scalar value.
func OfBool(b bool) Value { return Value{Kind: kind.Bool, Bool: b} }

// OfUint returns an Uint scalar value.
func OfUint(v uint64) Value { return Value{Kind: kind.Uint, Uint: v} }

// OfInt returns a Int scalar value. Per spec §3.1, Int is used only
// for negative magnitudes; non-negative values should use OfUint.
func OfInt(v int64) Value { return Value{Kind: kind.Int, Int: v} }

// OfFloat returns a Float scalar value.
func OfFloat(v float64) Value { return Value{Kind: kind.Float, Float: v} }

// ScalarVisitor dispatches on a Value's kind, the Go equivalent of
// variant<...>::visit for the six inline scalar kinds.
type ScalarVisitor interface {
	VisitNull()
	VisitBool(v bool)
	VisitUint(v uint64)
	VisitInt(v int64)
	VisitFloat(v float64)
	VisitUndefined()
}

// Visit dispatches v to the matching method of visitor.
func (v Value) Visit(visitor ScalarVisitor) {
	switch v.Kind {
	case kind.Null:
		visitor.VisitNull()
	case kind.Bool:
		visitor.VisitBool(v.Bool)
	case kind.Uint:
		visitor.VisitUint(v.Uint)
	case kind.Int:
		visitor.VisitInt(v.Int)
	case kind.Float:
		visitor.VisitFloat(v.Float)
	case kind.Undefined:
		visitor.VisitUndefined()
	}
}
