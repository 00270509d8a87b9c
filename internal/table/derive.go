package table

// DeriveFunc computes one cell from the other cells of the same row. It must
// not look at any other row.
type DeriveFunc func(Row) (Value, error)

// Derive computes a new column per row. If the column already exists its
// cells are overwritten in place and the schema is unchanged; otherwise the
// column is appended. Row count and every other column are preserved
// exactly.
func (t *Table) Derive(col string, fn DeriveFunc) (*Table, error) {
	existing := t.HasColumn(col)
	ci := len(t.cols)
	cols := t.Columns()
	if existing {
		ci = t.index[col]
	} else {
		cols = append(cols, col)
	}

	rows := make([][]Value, len(t.rows))
	for ri := range t.rows {
		v, err := fn(t.Row(ri))
		if err != nil {
			return nil, err
		}
		out := copyRow(t.rows[ri])
		if existing {
			out[ci] = v
		} else {
			out = append(out, v)
		}
		rows[ri] = out
	}
	return New(cols, rows)
}

// Expr is a per-row expression usable as the right-hand side of Derive.
type Expr interface {
	Eval(Row) (Value, error)
}

// ColumnRef evaluates to the row's cell for a named column.
type ColumnRef string

// Eval implements Expr.
func (c ColumnRef) Eval(r Row) (Value, error) {
	return r.Value(string(c))
}

// Literal evaluates to a fixed value on every row.
type Literal Value

// Eval implements Expr.
func (l Literal) Eval(Row) (Value, error) {
	return Value(l), nil
}

// BinaryExpr applies an arithmetic operator to two sub-expressions.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

// Eval implements Expr. A null operand yields null; division always widens
// to float.
func (b BinaryExpr) Eval(r Row) (Value, error) {
	lv, err := b.Left.Eval(r)
	if err != nil {
		return Null(), err
	}
	rv, err := b.Right.Eval(r)
	if err != nil {
		return Null(), err
	}
	return arith(lv, rv, b.Op)
}

// DeriveExpr is Derive with an Expr instead of a func.
func (t *Table) DeriveExpr(col string, expr Expr) (*Table, error) {
	return t.Derive(col, expr.Eval)
}
