// Package errors defines the typed error taxonomy shared by the table verbs,
// the loaders and the pipeline runner. Every failure carries a Kind so callers
// can branch on the class of failure without string matching, and optional
// step/column context for attribution in logs.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error.
type Kind string

const (
	KindColumnNotFound Kind = "column_not_found"
	KindShapeMismatch  Kind = "shape_mismatch"
	KindValidation     Kind = "validation"
	KindLoad           Kind = "load"
	KindWrite          Kind = "write"
	KindExecution      Kind = "execution"
)

// Error is the concrete error type used across the module.
type Error struct {
	Kind    Kind
	Step    string
	Column  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "unknown table error"
	}
	msg := e.Message
	if e.Column != "" {
		msg = fmt.Sprintf("%s (column %q)", msg, e.Column)
	}
	if e.Step != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Step, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ColumnNotFound reports a reference to a column that does not exist.
func ColumnNotFound(column string) *Error {
	return &Error{
		Kind:    KindColumnNotFound,
		Column:  column,
		Message: "column does not exist",
	}
}

// ShapeMismatch reports a split that produced the wrong number of parts.
func ShapeMismatch(column, message string) *Error {
	return &Error{
		Kind:    KindShapeMismatch,
		Column:  column,
		Message: message,
	}
}

// Validation reports an invalid verb or pipeline parameter.
func Validation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

// Validationf reports an invalid parameter with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// Load reports a failure reading or parsing source data.
func Load(message string, cause error) *Error {
	return &Error{
		Kind:    KindLoad,
		Message: message,
		Cause:   cause,
	}
}

// Write reports a failure writing the output snapshot.
func Write(message string, cause error) *Error {
	return &Error{
		Kind:    KindWrite,
		Message: message,
		Cause:   cause,
	}
}

// WrapStep attributes err to a named pipeline step. An *Error keeps its kind
// and gains the step name if it has none; anything else becomes an execution
// error with err as the cause.
func WrapStep(err error, step string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Step == "" {
			e.Step = step
		}
		return e
	}
	return &Error{
		Kind:    KindExecution,
		Step:    step,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or KindExecution for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExecution
}
