package jsonview

import (
	"fmt"
	"slices"
	"sync"
)

// Fields resolves named fields over one Document and remembers every result.
// Each field is walked at most once; misses are remembered as zero values.
// Values are never invalidated, since the underlying document never changes.
type Fields struct {
	doc *Document

	mu    sync.Mutex
	cache map[string]any
}

// NewFields returns a field accessor for doc. doc may be nil.
func NewFields(doc *Document) *Fields {
	return &Fields{
		doc:   doc,
		cache: make(map[string]any),
	}
}

// Document returns the document backing the accessor.
func (f *Fields) Document() *Document { return f.doc }

// Has reports whether key already holds a remembered value.
func (f *Fields) Has(key string) bool {
	_, ok := f.load(key)
	return ok
}

// String returns the string at path, remembered under key.
func (f *Fields) String(key string, path ...any) (string, error) {
	return Get(f, key, ToString, path...)
}

// Bool returns the bool at path, remembered under key.
func (f *Fields) Bool(key string, path ...any) (bool, error) {
	return Get(f, key, ToBool, path...)
}

// Int returns the integer at path, remembered under key.
func (f *Fields) Int(key string, path ...any) (int64, error) {
	return Get(f, key, ToInt64, path...)
}

// Float returns the number at path, remembered under key.
func (f *Fields) Float(key string, path ...any) (float64, error) {
	return Get(f, key, ToFloat64, path...)
}

// Strings returns the array of strings at path, remembered under key.
func (f *Fields) Strings(key string, path ...any) ([]string, error) {
	return List(f, key, ToString, path...)
}

// Get resolves a scalar field. A missing path yields the zero value of T and
// is remembered like any other result. A present leaf that conv rejects
// returns a *ConversionError and nothing is remembered.
func Get[T any](f *Fields, key string, conv Converter[T], path ...any) (T, error) {
	if v, ok := f.load(key); ok {
		return cachedAs[T](key, v)
	}

	var out T
	if node, ok := f.doc.Lookup(path...); ok {
		v, err := conv(node)
		if err != nil {
			return out, newConversionError[T](key, path, err)
		}
		out = v
	}

	return cachedAs[T](key, f.store(key, out))
}

// List resolves an array field, converting each element with conv.
// A missing path yields an empty, non-nil slice. Callers get their own copy,
// so changing the result never changes the remembered value.
func List[T any](f *Fields, key string, conv Converter[T], path ...any) ([]T, error) {
	if v, ok := f.load(key); ok {
		return cloneList[T](key, v)
	}

	out := []T{}
	if node, ok := f.doc.Lookup(path...); ok {
		items, isArray := node.([]any)
		if !isArray {
			return nil, newConversionError[[]T](key, path, fmt.Errorf("unable to cast %s to array", kindOf(node)))
		}
		out = make([]T, 0, len(items))
		for i, item := range items {
			v, err := conv(item)
			if err != nil {
				return nil, newConversionError[T](key, append(clonePath(path), i), err)
			}
			out = append(out, v)
		}
	}

	return cloneList[T](key, f.store(key, out))
}

// Memo returns the value remembered under key or calls compute once to produce it.
// compute may do anything, including network calls. Its errors are returned
// as-is and not remembered, so a later call retries.
func Memo[T any](f *Fields, key string, compute func() (T, error)) (T, error) {
	if v, ok := f.load(key); ok {
		return cachedAs[T](key, v)
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	return cachedAs[T](key, f.store(key, v))
}

// load reads the cache under lock.
func (f *Fields) load(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.cache[key]
	return v, ok
}

// store writes the cache under lock and returns the remembered value.
// The first stored value wins.
func (f *Fields) store(key string, v any) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.cache[key]; ok {
		return prev
	}
	f.cache[key] = v
	return v
}

// cachedAs asserts a remembered value back to T.
func cachedAs[T any](key string, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return out, fmt.Errorf("field %q: %w: have %T, want %T", key, ErrCacheType, v, out)
	}
	return out, nil
}

// cloneList asserts a remembered list back to []T and copies it.
func cloneList[T any](key string, v any) ([]T, error) {
	out, err := cachedAs[[]T](key, v)
	if err != nil {
		return nil, err
	}
	return slices.Clone(out), nil
}

// clonePath copies path so appending an index never aliases the caller's slice.
func clonePath(path []any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return out
}
