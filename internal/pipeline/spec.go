package pipeline

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	apperrors "tablecli/internal/errors"
)

// Spec is a declarative pipeline: an ordered list of step specs decoded from
// YAML.
type Spec struct {
	Steps []StepSpec `yaml:"steps" validate:"required,min=1,dive"`
}

// StepSpec declares one step. Op selects the verb; the remaining fields are
// the verb's parameters and only the relevant subset applies.
type StepSpec struct {
	Op string `yaml:"op" validate:"required,oneof=reshape_long split_column sort rename select distinct derive filter limit"`

	// reshape_long
	IDColumns    []string `yaml:"id_columns"`
	ValueColumns []string `yaml:"value_columns"`
	Key          string   `yaml:"key"`
	Value        string   `yaml:"value"`

	// split_column
	Column     string   `yaml:"column"`
	Into       []string `yaml:"into"`
	Separator  string   `yaml:"separator"`
	Policy     string   `yaml:"policy" validate:"omitempty,oneof=merge_remainder exact"`
	KeepSource bool     `yaml:"keep_source"`

	// sort
	Keys []SortKeySpec `yaml:"keys" validate:"dive"`

	// rename
	Mapping map[string]string `yaml:"mapping"`

	// select, distinct
	Columns []ColumnSelSpec `yaml:"columns" validate:"dive"`

	// derive
	Expr *ExprSpec `yaml:"expr"`

	// filter
	Conditions []ConditionSpec `yaml:"conditions" validate:"dive"`

	// limit
	N int `yaml:"n" validate:"min=0"`
}

// SortKeySpec declares one sort key.
type SortKeySpec struct {
	Column string `yaml:"column" validate:"required"`
	Desc   bool   `yaml:"desc"`
}

// ColumnSelSpec declares one projected column with an optional inline
// rename.
type ColumnSelSpec struct {
	Name string `yaml:"name" validate:"required"`
	As   string `yaml:"as"`
}

// ExprSpec declares a derive expression: left op right, where left is a
// column and right is either a column or a numeric literal.
type ExprSpec struct {
	Left    string   `yaml:"left" validate:"required"`
	Op      string   `yaml:"op" validate:"required,oneof=+ - * /"`
	Right   string   `yaml:"right"`
	Literal *float64 `yaml:"literal"`
}

// ConditionSpec declares one filter predicate. Exactly one of the forms
// applies: a column comparison, a null check, an any_of group (OR), or a
// not wrapper.
type ConditionSpec struct {
	Column string          `yaml:"column"`
	Op     string          `yaml:"op" validate:"omitempty,oneof=== != < <= > >= is_null not_null"`
	Value  interface{}     `yaml:"value"`
	AnyOf  []ConditionSpec `yaml:"any_of"`
	Not    *ConditionSpec  `yaml:"not"`
}

// LoadSpec reads and validates a YAML pipeline spec.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("cannot read pipeline spec %s", path), err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes and validates a YAML pipeline spec.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, apperrors.Load("malformed pipeline spec", err)
	}
	if err := validator.New().Struct(&spec); err != nil {
		return nil, apperrors.Validationf("invalid pipeline spec: %v", err)
	}
	return &spec, nil
}
