package inventory

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindString
	kindList
)

// Value is a single record field: a scalar string, a list of strings, or
// an explicit absent marker for optional API fields the source omitted.
type Value struct {
	kind valueKind
	str  string
	list []string
}

// Str wraps a scalar string value.
func Str(s string) Value {
	return Value{kind: kindString, str: s}
}

// StrList wraps a list value. The list keeps its element order.
func StrList(items []string) Value {
	return Value{kind: kindList, list: items}
}

// Absent is the explicit no-value marker.
func Absent() Value {
	return Value{kind: kindAbsent}
}

// StrOrAbsent wraps s, mapping the empty string to Absent. API objects
// report missing optional scalars as zero values, which is exactly the
// "sub-object not populated" case.
func StrOrAbsent(s string) Value {
	if s == "" {
		return Absent()
	}
	return Str(s)
}

func (v Value) IsAbsent() bool {
	return v.kind == kindAbsent
}

// List returns the list elements, or nil for scalar and absent values.
func (v Value) List() []string {
	return v.list
}

// ExportString renders the value for tabular output: lists are joined with
// a newline, absent values render empty.
func (v Value) ExportString() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindList:
		return strings.Join(v.list, "\n")
	default:
		return ""
	}
}

func (v Value) any() any {
	switch v.kind {
	case kindString:
		return v.str
	case kindList:
		return v.list
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.any())
}

func (v Value) MarshalYAML() (any, error) {
	return v.any(), nil
}

// Record is a flat, insertion-ordered mapping of field name to Value.
// Field order matters: the tabular exporter derives column headers from the
// first record of a set in the order its fields were set.
type Record struct {
	keys   []string
	values map[string]Value
}

func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Set stores a field value. First-time keys append to the field order;
// setting an existing key overwrites in place.
func (r *Record) Set(key string, v Value) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return r
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON emits the record as a JSON object preserving field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}

// MarshalYAML emits the record as a YAML mapping preserving field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range r.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(r.values[key].any()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// RecordSet is a named, homogeneous sequence of records. Homogeneity is a
// caller contract, not a checked property.
type RecordSet struct {
	Category string
	Records  []*Record
}

// Append adds records to the set.
func (s *RecordSet) Append(records ...*Record) {
	s.Records = append(s.Records, records...)
}

// Len returns the number of records in the set.
func (s *RecordSet) Len() int {
	return len(s.Records)
}
