package table

import (
	"strconv"

	apperrors "tablecli/internal/errors"
)

// Kind is the scalar type category of a cell.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single cell: a typed scalar or the null marker. The zero Value
// is null.
type Value struct {
	kind    Kind
	present bool
	i       int64
	f       float64
	s       string
}

// Null returns the missing-value marker.
func Null() Value {
	return Value{}
}

// Int returns an integer cell value.
func Int(v int64) Value {
	return Value{kind: KindInt, present: true, i: v}
}

// Float returns a floating-point cell value.
func Float(v float64) Value {
	return Value{kind: KindFloat, present: true, f: v}
}

// String returns a text cell value.
func String(s string) Value {
	return Value{kind: KindString, present: true, s: s}
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool {
	return !v.present
}

// Kind returns the scalar kind. Meaningless for null cells.
func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer value. Only valid for KindInt cells.
func (v Value) AsInt() int64 {
	return v.i
}

// AsFloat returns the numeric value widened to float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the text value. Only valid for KindString cells.
func (v Value) AsString() string {
	return v.s
}

// isNumeric reports whether the cell holds an int or float.
func (v Value) isNumeric() bool {
	return v.present && (v.kind == KindInt || v.kind == KindFloat)
}

// Format renders the cell for CSV output. Null cells render as the empty
// string; floats use the shortest representation that round-trips.
func (v Value) Format() string {
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.s
	}
}

// Equal reports whether two cells are equal. Null equals only null; numeric
// cells compare by value across int/float kinds.
func (v Value) Equal(o Value) bool {
	if !v.present || !o.present {
		return v.present == o.present
	}
	if v.isNumeric() && o.isNumeric() {
		return v.AsFloat() == o.AsFloat()
	}
	if v.kind != o.kind {
		return false
	}
	return v.s == o.s
}

// compare orders two cells for sorting. Nulls order after every non-null
// value, numeric cells order before text when kinds are mixed, numeric
// against numeric compares by widened value, text against text compares
// lexicographically.
func compare(a, b Value) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return 1
	case !b.present:
		return -1
	}
	an, bn := a.isNumeric(), b.isNumeric()
	switch {
	case an && bn:
		af, bf := a.AsFloat(), b.AsFloat()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case an:
		return -1
	case bn:
		return 1
	default:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		default:
			return 0
		}
	}
}

// threeWayCompare is the predicate-facing comparison: it reports ordering and
// whether the comparison is defined at all. Null operands and mixed
// text/numeric operands are undefined, which surfaces as a missing predicate
// result rather than an error.
func threeWayCompare(a, b Value) (int, bool) {
	if !a.present || !b.present {
		return 0, false
	}
	if a.isNumeric() != b.isNumeric() {
		return 0, false
	}
	return compare(a, b), true
}

// Arithmetic over cells. Null propagates: any null operand yields null.
// Text operands are rejected. Add, Sub and Mul stay integral when both
// operands are ints; Div always widens to float so 100/50 derives 2.0 and
// division by zero follows IEEE-754 instead of failing the row.

// Add returns a+b.
func Add(a, b Value) (Value, error) {
	return arith(a, b, "+")
}

// Sub returns a-b.
func Sub(a, b Value) (Value, error) {
	return arith(a, b, "-")
}

// Mul returns a*b.
func Mul(a, b Value) (Value, error) {
	return arith(a, b, "*")
}

// Div returns a/b as a float.
func Div(a, b Value) (Value, error) {
	return arith(a, b, "/")
}

func arith(a, b Value, op string) (Value, error) {
	if !a.present || !b.present {
		return Null(), nil
	}
	if !a.isNumeric() || !b.isNumeric() {
		return Null(), apperrors.Validationf("operator %q requires numeric operands", op)
	}
	if op != "/" && a.kind == KindInt && b.kind == KindInt {
		switch op {
		case "+":
			return Int(a.i + b.i), nil
		case "-":
			return Int(a.i - b.i), nil
		case "*":
			return Int(a.i * b.i), nil
		}
	}
	af, bf := a.AsFloat(), b.AsFloat()
	switch op {
	case "+":
		return Float(af + bf), nil
	case "-":
		return Float(af - bf), nil
	case "*":
		return Float(af * bf), nil
	case "/":
		return Float(af / bf), nil
	}
	return Null(), apperrors.Validationf("unknown operator %q", op)
}
