package drill

// Level identifies a position in the navigation hierarchy. Values are
// opaque to the engine; only the configured root and multi-select levels
// are treated specially. Callers define their own constants.
type Level string

// Context carries the accumulated filter parameters for a view, such as
// the selected year, site, or category. Values must be plain data
// (strings, booleans, numbers, or string slices) so contexts can be
// deep-copied; the engine never mutates a context in place and callers
// must not either.
type Context map[string]any

// Clone returns an independent copy of the context. String slices are
// copied so mutations of the clone never leak into the original.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	out := make(Context, len(c))
	for k, v := range c {
		if s, ok := v.([]string); ok {
			out[k] = append([]string(nil), s...)
			continue
		}
		out[k] = v
	}
	return out
}

// Merge returns a new context containing all keys of c overlaid with the
// keys of delta. Neither input is modified; drilling deeper only ever
// adds or overrides keys, it never removes them.
func (c Context) Merge(delta Context) Context {
	out := c.Clone()
	for k, v := range delta {
		if s, ok := v.([]string); ok {
			out[k] = append([]string(nil), s...)
			continue
		}
		out[k] = v
	}
	return out
}

// String returns the string value stored under key, or "" when the key
// is absent or holds a different type.
func (c Context) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Int returns the integer value stored under key. JSON round-trips store
// numbers as float64, so both forms are accepted. Returns 0 when absent.
func (c Context) Int(key string) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Strings returns the string-slice value stored under key, or nil when
// the key is absent or holds a different type.
func (c Context) Strings(key string) []string {
	s, _ := c[key].([]string)
	return s
}

// Has reports whether key is present in the context.
func (c Context) Has(key string) bool {
	_, ok := c[key]
	return ok
}
