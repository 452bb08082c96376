package jsonview

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Converter turns a resolved JSON leaf into a typed Go value.
type Converter[T any] func(v any) (T, error)

// ToString converts a JSON scalar to a string. Numbers keep their literal form.
func ToString(v any) (string, error) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), nil
	case map[string]any, []any:
		return "", fmt.Errorf("unable to cast %s to string", kindOf(v))
	}
	return cast.ToStringE(v)
}

// ToBool converts a JSON scalar to a bool. Numbers are true when non-zero.
func ToBool(v any) (bool, error) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, err
		}
		return f != 0, nil
	case map[string]any, []any:
		return false, fmt.Errorf("unable to cast %s to bool", kindOf(v))
	}
	return cast.ToBoolE(v)
}

// ToInt64 converts a JSON scalar to an int64. Fractional numbers are rejected.
func ToInt64(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Int64()
	case map[string]any, []any:
		return 0, fmt.Errorf("unable to cast %s to int64", kindOf(v))
	}
	return cast.ToInt64E(v)
}

// ToFloat64 converts a JSON scalar to a float64.
func ToFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case map[string]any, []any:
		return 0, fmt.Errorf("unable to cast %s to float64", kindOf(v))
	}
	return cast.ToFloat64E(v)
}

// kindOf names the JSON kind of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
