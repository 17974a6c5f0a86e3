// Package buildererrors holds typed errors for generated builders that set
// errors_package to this import path.
//
// Generated Build methods return a *FieldNotSetError for the first required
// field that was never set:
//
//	cmd, err := NewCommandBuilder().Build()
//	if errors.Is(err, buildererrors.ErrFieldNotSet) {
//		...
//	}
package buildererrors

import (
	"errors"
	"fmt"
)

// ErrFieldNotSet matches every *FieldNotSetError.
var ErrFieldNotSet = errors.New("field is not set")

// FieldNotSetError reports a required field left unset on a builder.
type FieldNotSetError struct {
	Record string
	Field  string
}

func (e *FieldNotSetError) Error() string {
	return fmt.Sprintf("%s: %s is not set", e.Record, e.Field)
}

// Is reports whether target is ErrFieldNotSet.
func (e *FieldNotSetError) Is(target error) bool {
	return target == ErrFieldNotSet
}

// NotSet returns the error for field of record.
func NotSet(record, field string) error {
	return &FieldNotSetError{Record: record, Field: field}
}
