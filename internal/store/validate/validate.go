// Package validate holds one schema validator per entity type. Each validator
// first applies backward-compatible defaults so records written by older
// versions keep loading, then validates strictly. Validators never mutate
// their input; they return the normalized record.
package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error is a schema rejection. Err preserves the offending field paths
// (ozzo-validation reports them as a map keyed by field).
type Error struct {
	Entity string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %v", e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(entity string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Entity: entity, Err: err}
}

// in builds an ozzo In rule from a typed enum slice.
func in[T any](values []T) validation.Rule {
	vs := make([]interface{}, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return validation.In(vs...)
}
