// Package fields pulls typed fields out of extracted document text using
// per-document-type pattern rules, and scores how complete the result is.
package fields

import (
	"bytes"
	"encoding/json"
)

// FieldSet is an ordered mapping from field name to an extracted value
// (scalar string or short list of strings). Keys are recorded in insertion
// order; a key is never overwritten once set and never holds an empty value.
type FieldSet struct {
	keys    []string
	scalars map[string]string
	lists   map[string][]string
}

func NewFieldSet() *FieldSet {
	return &FieldSet{
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

// SetScalar records a scalar field. Empty values and repeated keys are
// ignored (first successful pattern wins).
func (f *FieldSet) SetScalar(key, value string) {
	if key == "" || value == "" || f.Has(key) {
		return
	}
	f.keys = append(f.keys, key)
	f.scalars[key] = value
}

// SetList records a list field. Empty lists and repeated keys are ignored.
func (f *FieldSet) SetList(key string, values []string) {
	if key == "" || len(values) == 0 || f.Has(key) {
		return
	}
	f.keys = append(f.keys, key)
	f.lists[key] = values
}

func (f *FieldSet) Has(key string) bool {
	if f == nil {
		return false
	}
	if _, ok := f.scalars[key]; ok {
		return true
	}
	_, ok := f.lists[key]
	return ok
}

func (f *FieldSet) Scalar(key string) (string, bool) {
	v, ok := f.scalars[key]
	return v, ok
}

func (f *FieldSet) List(key string) ([]string, bool) {
	v, ok := f.lists[key]
	return v, ok
}

func (f *FieldSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// ScalarMap returns a copy of the scalar fields, for passing as hints to
// downstream collaborators.
func (f *FieldSet) ScalarMap() map[string]string {
	out := make(map[string]string, len(f.scalars))
	for k, v := range f.scalars {
		out[k] = v
	}
	return out
}

// Keys returns the field names in insertion order.
func (f *FieldSet) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// MarshalJSON emits an object whose keys appear in insertion order.
func (f *FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		var vb []byte
		if v, ok := f.scalars[k]; ok {
			vb, err = json.Marshal(v)
		} else {
			vb, err = json.Marshal(f.lists[k])
		}
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
