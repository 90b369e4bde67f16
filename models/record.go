package models

import (
	"encoding/json"
	"strconv"
)

// Record is a field-name keyed document. It carries partial updates and the
// raw shape of server payloads, so fields the client does not know about
// survive a round trip.
type Record map[string]any

// Has reports whether the field is present, even if its value is nil.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every field of other into a clone of r.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Int64 converts the numeric representations produced by encoding/json
// (float64, json.Number) and Go literals into an int64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	case *int64:
		if n == nil {
			return 0, false
		}
		return *n, true
	}
	return 0, false
}

// NullableInt64 returns nil for a nil or non-numeric value.
func NullableInt64(v any) *int64 {
	i, ok := Int64(v)
	if !ok {
		return nil
	}
	return &i
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func nullableString(v any) *string {
	switch s := v.(type) {
	case string:
		return &s
	case *string:
		if s == nil {
			return nil
		}
		c := *s
		return &c
	}
	return nil
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func int64Value(v any) int64 {
	i, _ := Int64(v)
	return i
}

func nullableValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
