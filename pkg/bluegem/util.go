package bluegem

import "time"

// Chunk splits items into batches of up to size elements, preserving
// order. The final batch may be shorter. Chunking an empty or nil slice
// yields no batches. It panics if size < 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		panic("bluegem: chunk size must be at least 1")
	}
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		chunks = append(chunks, items[:size:size])
		items = items[size:]
	}
	return append(chunks, items)
}

// epochTime converts Unix seconds into a UTC timestamp.
func epochTime(epoch int64) time.Time {
	return time.Unix(epoch, 0).UTC()
}

// daysBetween returns the number of whole days from earlier to later.
func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}

// SafeGet walks a nested document along keys and returns the value at
// the end of the path. It returns false if any intermediate value is
// missing or not an object, never panicking on unexpected shapes.
func SafeGet(doc map[string]any, keys ...string) (any, bool) {
	var v any = doc
	for _, key := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

// docString extracts a string field, returning false if nil or not a string.
func docString(doc map[string]any, key string) (string, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// docStringOr extracts a string field, falling back to def.
func docStringOr(doc map[string]any, key, def string) string {
	if s, ok := docString(doc, key); ok {
		return s
	}
	return def
}

// docInt extracts an integer field, handling both int and float64
// (JSON numbers decode as float64; fractions are truncated).
func docInt(doc map[string]any, key string) (int, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// docIntOr extracts an integer field, falling back to def.
func docIntOr(doc map[string]any, key string, def int) int {
	if n, ok := docInt(doc, key); ok {
		return n
	}
	return def
}

// docInt64 extracts a 64-bit integer field.
func docInt64(doc map[string]any, key string) (int64, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// docFloat extracts a float64 field.
func docFloat(doc map[string]any, key string) (float64, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// docFloatOr extracts a float64 field, falling back to def.
func docFloatOr(doc map[string]any, key string, def float64) float64 {
	if f, ok := docFloat(doc, key); ok {
		return f
	}
	return def
}

// docMap extracts a nested object field.
func docMap(doc map[string]any, key string) (map[string]any, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// docSlice extracts an array field.
func docSlice(doc map[string]any, key string) ([]any, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}
