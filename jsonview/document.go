package jsonview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a read-only JSON tree decoded from a single response body.
// A nil *Document is valid and behaves like a document where every path is missing.
type Document struct {
	root any
}

// Parse decodes raw JSON using UseNumber to preserve integer precision.
// Empty input yields an empty object.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Document{root: map[string]any{}}, nil
	}

	var root any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the decoded top-level value, or nil for an absent document.
func (d *Document) Root() any {
	if d == nil {
		return nil
	}
	return d.root
}

// Lookup walks the tree one segment at a time. A string segment selects an
// object member, an int segment selects an array element. Any mismatch, an
// out-of-range index or a JSON null leaf reports a miss.
func (d *Document) Lookup(path ...any) (any, bool) {
	if d == nil {
		return nil, false
	}

	node := d.root
	for _, seg := range path {
		switch s := seg.(type) {
		case string:
			obj, ok := node.(map[string]any)
			if !ok {
				return nil, false
			}
			if node, ok = obj[s]; !ok {
				return nil, false
			}
		case int:
			arr, ok := node.([]any)
			if !ok || s < 0 || s >= len(arr) {
				return nil, false
			}
			node = arr[s]
		default:
			return nil, false
		}
		if node == nil {
			return nil, false
		}
	}

	return node, node != nil
}

// FormatPath renders path segments as a dotted expression, e.g. "fields.labels[0]".
func FormatPath(path []any) string {
	var b strings.Builder
	for _, seg := range path {
		switch s := seg.(type) {
		case int:
			fmt.Fprintf(&b, "[%d]", s)
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, s)
		}
	}
	return b.String()
}
