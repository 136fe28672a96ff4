package chapa

import "encoding/json"

// Object is an attribute-addressable view over a decoded JSON mapping.
// Nested mappings are themselves *Object nodes; every other JSON value
// (string, number, bool, nil, slice) passes through unchanged, except that
// mapping elements inside slices are adapted too.
//
// An Object is a fresh, independently owned value: mutating the source map
// after adaptation does not affect it.
type Object struct {
	fields map[string]any
}

// Adapt recursively rewrites v for FormatObject. Non-mapping inputs are
// returned unchanged. The transform is pure and total: there are no error
// conditions over JSON-shaped values.
func Adapt(v any) any {
	switch t := v.(type) {
	case map[string]any:
		fields := make(map[string]any, len(t))
		for k, val := range t {
			fields[k] = Adapt(val)
		}
		return &Object{fields: fields}
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Adapt(val)
		}
		return out
	default:
		return v
	}
}

// Get returns the value stored under name, or nil when absent.
func (o *Object) Get(name string) any {
	if o == nil {
		return nil
	}
	return o.fields[name]
}

// Lookup returns the value stored under name and whether it was present.
func (o *Object) Lookup(name string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[name]
	return v, ok
}

// Object returns the nested Object under name, or nil when the field is
// absent or not a mapping.
func (o *Object) Object(name string) *Object {
	child, _ := o.Get(name).(*Object)
	return child
}

// String returns the string field under name, or "" for any other shape.
func (o *Object) String(name string) string {
	s, _ := o.Get(name).(string)
	return s
}

// Keys returns the field names present on this node.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of fields on this node.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// MarshalJSON serializes the node back into the mapping it was adapted
// from, so Object trees round-trip through encoding/json.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.fields)
}
