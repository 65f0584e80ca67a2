package document

import (
	"testing"

	"github.com/streamcodec/goldfish/kind"
)

type recordingVisitor struct {
	calls []string
}

func (r *recordingVisitor) VisitNull()            { r.calls = append(r.calls, "null") }
func (r *recordingVisitor) VisitBool(v bool)      { r.calls = append(r.calls, boolLabel(v)) }
func (r *recordingVisitor) VisitUint(v uint64)    { r.calls = append(r.calls, "uint") }
func (r *recordingVisitor) VisitInt(v int64)      { r.calls = append(r.calls, "int") }
func (r *recordingVisitor) VisitFloat(v float64)  { r.calls = append(r.calls, "float") }
func (r *recordingVisitor) VisitUndefined()       { r.calls = append(r.calls, "undefined") }

func boolLabel(v bool) string {
	if v {
		return "bool:true"
	}
	return "bool:false"
}

func TestValueConstructorsSetKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    Value
		want kind.Kind
	}{
		{"Null", Null(), kind.Null},
		{"Undefined", Undefined(), kind.Undefined},
		{"OfBool", OfBool(true), kind.Bool},
		{"OfUint", OfUint(42), kind.Uint},
		{"OfInt", OfInt(-42), kind.Int},
		{"OfFloat", OfFloat(3.5), kind.Float},
	}
	for _, c := range cases {
		if c.v.Kind != c.want {
			t.Errorf("%s: Kind = %s, want %s", c.name, c.v.Kind, c.want)
		}
	}
}

func TestValueVisitDispatchesOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Undefined(), "undefined"},
		{OfBool(true), "bool:true"},
		{OfBool(false), "bool:false"},
		{OfUint(1), "uint"},
		{OfInt(-1), "int"},
		{OfFloat(1.5), "float"},
	}
	for _, c := range cases {
		rec := &recordingVisitor{}
		c.v.Visit(rec)
		if len(rec.calls) != 1 || rec.calls[0] != c.want {
			t.Errorf("Visit(%s) calls = %v, want [%s]", c.v.Kind, rec.calls, c.want)
		}
	}
}
