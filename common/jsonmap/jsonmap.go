// Package jsonmap holds JSON object helpers used for flattened extension properties.
package jsonmap

import (
	"encoding/json"
	"fmt"
)

// Object represents the free-form members of a JSON object.
type Object map[string]interface{}

// Clone returns a shallow copy of the object.
func (m Object) Clone() Object {
	if m == nil {
		return nil
	}

	out := make(Object, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// Without returns a copy of the object excluding the given keys.
func (m Object) Without(keys ...string) Object {
	out := m.Clone()
	for _, key := range keys {
		delete(out, key)
	}

	return out
}

// ToJSON serializes the object to JSON.
func (m Object) ToJSON() ([]byte, error) {
	data, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object: %w", err)
	}

	return data, nil
}

// Flatten merges core members over the extension members and encodes the result.
// Core members win on key collision.
func Flatten(core map[string]interface{}, extra Object) ([]byte, error) {
	out := make(map[string]interface{}, len(core)+len(extra))
	for k, v := range extra {
		out[k] = v
	}

	for k, v := range core {
		out[k] = v
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object: %w", err)
	}

	return data, nil
}

// Raw is a JSON object decoded one level deep. Core members are popped out of
// it; whatever remains becomes the extension property bag.
type Raw map[string]json.RawMessage

// Decode parses data as a JSON object.
func Decode(data []byte) (Raw, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object: %w", err)
	}

	if raw == nil {
		return nil, fmt.Errorf("failed to unmarshal object: got null")
	}

	return raw, nil
}

// Has reports whether the member is present and not null.
func (r Raw) Has(key string) bool {
	v, ok := r[key]

	return ok && string(v) != "null"
}

// Pop removes the member from r and decodes it into dst. It reports whether
// the member was present. A null member counts as absent.
func (r Raw) Pop(key string, dst interface{}) (bool, error) {
	v, ok := r[key]
	if !ok {
		return false, nil
	}

	delete(r, key)

	if string(v) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(v, dst); err != nil {
		return true, fmt.Errorf("failed to unmarshal `%s`: %w", key, err)
	}

	return true, nil
}

// Rest decodes the remaining members into an Object. An empty remainder yields nil.
func (r Raw) Rest() (Object, error) {
	if len(r) == 0 {
		return nil, nil
	}

	out := make(Object, len(r))

	for k, v := range r {
		var value interface{}
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal `%s`: %w", k, err)
		}

		out[k] = value
	}

	return out, nil
}
