package table

import (
	apperrors "tablecli/internal/errors"
)

// Tri is a three-valued predicate result: a comparison touching a missing
// cell is neither true nor false.
type Tri int

const (
	TriFalse Tri = iota
	TriTrue
	TriMissing
)

// Predicate is a per-row boolean test. Columns reports every column the
// predicate reads so Filter can validate the schema once, before scanning
// rows.
type Predicate interface {
	Eval(Row) Tri
	Columns() []string
}

// CmpOp is a comparison operator for Cmp predicates.
type CmpOp string

const (
	OpEq CmpOp = "=="
	OpNe CmpOp = "!="
	OpLt CmpOp = "<"
	OpLe CmpOp = "<="
	OpGt CmpOp = ">"
	OpGe CmpOp = ">="
)

type cmpPredicate struct {
	col string
	op  CmpOp
	arg Value
}

// Cmp compares a column's cell against a fixed value. A null cell, or a
// text/numeric type clash, evaluates to missing; == and != stay defined
// for type clashes (unequal) but not for nulls.
func Cmp(col string, op CmpOp, arg Value) Predicate {
	return cmpPredicate{col: col, op: op, arg: arg}
}

func (p cmpPredicate) Columns() []string {
	return []string{p.col}
}

func (p cmpPredicate) Eval(r Row) Tri {
	v, err := r.Value(p.col)
	if err != nil {
		return TriMissing
	}
	if v.IsNull() || p.arg.IsNull() {
		return TriMissing
	}
	switch p.op {
	case OpEq:
		return boolTri(v.Equal(p.arg))
	case OpNe:
		return boolTri(!v.Equal(p.arg))
	}
	c, ok := threeWayCompare(v, p.arg)
	if !ok {
		return TriMissing
	}
	switch p.op {
	case OpLt:
		return boolTri(c < 0)
	case OpLe:
		return boolTri(c <= 0)
	case OpGt:
		return boolTri(c > 0)
	case OpGe:
		return boolTri(c >= 0)
	default:
		return TriMissing
	}
}

type nullPredicate struct {
	col    string
	negate bool
}

// IsNull is true when the column's cell is missing.
func IsNull(col string) Predicate {
	return nullPredicate{col: col}
}

// IsNotNull is true when the column's cell is present.
func IsNotNull(col string) Predicate {
	return nullPredicate{col: col, negate: true}
}

func (p nullPredicate) Columns() []string {
	return []string{p.col}
}

func (p nullPredicate) Eval(r Row) Tri {
	v, err := r.Value(p.col)
	if err != nil {
		return TriMissing
	}
	return boolTri(v.IsNull() != p.negate)
}

type orPredicate struct {
	preds []Predicate
}

// Or is true when any sub-predicate is true. Missing results follow SQL
// semantics: true wins over missing, missing wins over false.
func Or(preds ...Predicate) Predicate {
	return orPredicate{preds: preds}
}

func (p orPredicate) Columns() []string {
	var cols []string
	for _, sub := range p.preds {
		cols = append(cols, sub.Columns()...)
	}
	return cols
}

func (p orPredicate) Eval(r Row) Tri {
	out := TriFalse
	for _, sub := range p.preds {
		switch sub.Eval(r) {
		case TriTrue:
			return TriTrue
		case TriMissing:
			out = TriMissing
		}
	}
	return out
}

type notPredicate struct {
	pred Predicate
}

// Not negates a predicate. Missing stays missing.
func Not(pred Predicate) Predicate {
	return notPredicate{pred: pred}
}

func (p notPredicate) Columns() []string {
	return p.pred.Columns()
}

func (p notPredicate) Eval(r Row) Tri {
	switch p.pred.Eval(r) {
	case TriTrue:
		return TriFalse
	case TriFalse:
		return TriTrue
	default:
		return TriMissing
	}
}

func boolTri(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Filter keeps the rows where every predicate is definitely true; false and
// missing results both drop the row. Column references are validated against
// the schema before any row is evaluated.
func (t *Table) Filter(preds ...Predicate) (*Table, error) {
	if len(preds) == 0 {
		return nil, apperrors.Validation("filter requires at least one predicate")
	}
	for _, p := range preds {
		for _, c := range p.Columns() {
			if !t.HasColumn(c) {
				return nil, apperrors.ColumnNotFound(c)
			}
		}
	}
	rows := make([][]Value, 0, len(t.rows))
	for ri := range t.rows {
		keep := true
		for _, p := range preds {
			if p.Eval(t.Row(ri)) != TriTrue {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, t.rows[ri])
		}
	}
	return New(t.Columns(), rows)
}
