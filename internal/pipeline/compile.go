package pipeline

import (
	"fmt"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/table"
)

// Compile turns a validated spec into executable steps. Parameter problems a
// struct validator cannot express (op-specific required fields, literal
// typing) are reported here, before any data is touched.
func Compile(spec *Spec) ([]Step, error) {
	steps := make([]Step, 0, len(spec.Steps))
	for i, ss := range spec.Steps {
		step, err := compileStep(ss)
		if err != nil {
			return nil, apperrors.WrapStep(err, fmt.Sprintf("%s[%d]", ss.Op, i))
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func compileStep(ss StepSpec) (Step, error) {
	switch ss.Op {
	case "reshape_long":
		if ss.Key == "" || ss.Value == "" {
			return nil, apperrors.Validation("reshape_long requires key and value names")
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.ReshapeLong(ss.IDColumns, ss.ValueColumns, ss.Key, ss.Value)
		}), nil

	case "split_column":
		if ss.Column == "" {
			return nil, apperrors.Validation("split_column requires a column")
		}
		opts := table.SplitOptions{
			Separator:  ss.Separator,
			Policy:     table.SplitPolicy(ss.Policy),
			KeepSource: ss.KeepSource,
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.SplitColumn(ss.Column, ss.Into, opts)
		}), nil

	case "sort":
		if len(ss.Keys) == 0 {
			return nil, apperrors.Validation("sort requires at least one key")
		}
		keys := make([]table.SortKey, len(ss.Keys))
		for i, k := range ss.Keys {
			keys[i] = table.SortKey{Column: k.Column, Desc: k.Desc}
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Sort(keys...)
		}), nil

	case "rename":
		if len(ss.Mapping) == 0 {
			return nil, apperrors.Validation("rename requires a mapping")
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Rename(ss.Mapping)
		}), nil

	case "select":
		if len(ss.Columns) == 0 {
			return nil, apperrors.Validation("select requires columns")
		}
		specs := make([]table.ColumnSpec, len(ss.Columns))
		for i, c := range ss.Columns {
			specs[i] = table.ColumnSpec{Name: c.Name, As: c.As}
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Select(specs...)
		}), nil

	case "distinct":
		cols := make([]string, len(ss.Columns))
		for i, c := range ss.Columns {
			if c.As != "" {
				return nil, apperrors.Validation("distinct does not rename columns")
			}
			cols[i] = c.Name
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Distinct(cols...)
		}), nil

	case "derive":
		if ss.Column == "" || ss.Expr == nil {
			return nil, apperrors.Validation("derive requires a column and an expr")
		}
		expr, err := compileExpr(ss.Expr)
		if err != nil {
			return nil, err
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.DeriveExpr(ss.Column, expr)
		}), nil

	case "filter":
		if len(ss.Conditions) == 0 {
			return nil, apperrors.Validation("filter requires conditions")
		}
		preds := make([]table.Predicate, len(ss.Conditions))
		for i, c := range ss.Conditions {
			p, err := compileCondition(c)
			if err != nil {
				return nil, err
			}
			preds[i] = p
		}
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Filter(preds...)
		}), nil

	case "limit":
		n := ss.N
		return NewStep(ss.Op, func(t *table.Table) (*table.Table, error) {
			return t.Limit(n)
		}), nil
	}
	return nil, apperrors.Validationf("unknown op %q", ss.Op)
}

func compileExpr(es *ExprSpec) (table.Expr, error) {
	var right table.Expr
	switch {
	case es.Right != "" && es.Literal != nil:
		return nil, apperrors.Validation("derive expr cannot have both right column and literal")
	case es.Right != "":
		right = table.ColumnRef(es.Right)
	case es.Literal != nil:
		right = table.Literal(table.Float(*es.Literal))
	default:
		return nil, apperrors.Validation("derive expr requires a right column or literal")
	}
	return table.BinaryExpr{
		Left:  table.ColumnRef(es.Left),
		Op:    es.Op,
		Right: right,
	}, nil
}

func compileCondition(cs ConditionSpec) (table.Predicate, error) {
	forms := 0
	if cs.Column != "" {
		forms++
	}
	if len(cs.AnyOf) > 0 {
		forms++
	}
	if cs.Not != nil {
		forms++
	}
	if forms != 1 {
		return nil, apperrors.Validation("condition must be exactly one of: column test, any_of, not")
	}

	switch {
	case len(cs.AnyOf) > 0:
		preds := make([]table.Predicate, len(cs.AnyOf))
		for i, sub := range cs.AnyOf {
			p, err := compileCondition(sub)
			if err != nil {
				return nil, err
			}
			preds[i] = p
		}
		return table.Or(preds...), nil

	case cs.Not != nil:
		p, err := compileCondition(*cs.Not)
		if err != nil {
			return nil, err
		}
		return table.Not(p), nil
	}

	switch cs.Op {
	case "is_null":
		return table.IsNull(cs.Column), nil
	case "not_null":
		return table.IsNotNull(cs.Column), nil
	case "==", "!=", "<", "<=", ">", ">=":
		arg, err := literalValue(cs.Value)
		if err != nil {
			return nil, err
		}
		return table.Cmp(cs.Column, table.CmpOp(cs.Op), arg), nil
	case "":
		return nil, apperrors.Validationf("condition on column %q requires an op", cs.Column)
	}
	return nil, apperrors.Validationf("unknown condition op %q", cs.Op)
}

// literalValue converts a YAML scalar into a cell value.
func literalValue(v interface{}) (table.Value, error) {
	switch x := v.(type) {
	case nil:
		return table.Null(), apperrors.Validation("comparison requires a value")
	case int:
		return table.Int(int64(x)), nil
	case int64:
		return table.Int(x), nil
	case float64:
		return table.Float(x), nil
	case string:
		return table.String(x), nil
	case bool:
		return table.Null(), apperrors.Validation("boolean literals are not supported")
	default:
		return table.Null(), apperrors.Validationf("unsupported literal type %T", v)
	}
}
