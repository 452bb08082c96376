package jsonview

import (
	"errors"
	"fmt"
)

// ErrCacheType is returned when one key is read back as two different types.
var ErrCacheType = errors.New("cached value has a different type")

// ConversionError reports a field whose JSON value exists but does not fit the requested type.
type ConversionError struct {
	Key  string // cache key of the field
	Path []any  // path that resolved to the value
	Type string // requested Go type
	Err  error  // underlying cast failure
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q at %q: convert to %s: %v", e.Key, FormatPath(e.Path), e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// newConversionError builds a ConversionError naming T as the target type.
func newConversionError[T any](key string, path []any, err error) *ConversionError {
	var zero T
	return &ConversionError{
		Key:  key,
		Path: path,
		Type: fmt.Sprintf("%T", zero),
		Err:  err,
	}
}
