// Package jsonview provides lazy, memoized typed access to fields of a decoded JSON document.
//
// Fields are declared as path expressions and resolved on first access:
//
//	f := jsonview.NewFields(doc)
//	key, err := f.String("Key", "key")
//	labels, err := f.Strings("Labels", "fields", "labels")
//
// A path that does not resolve is not an error and yields the zero value.
// A value that exists but cannot be converted is reported as a *ConversionError.
package jsonview
