package verification

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pilacorp/go-diddoc/did"
)

// MethodRef is an entry of a verification relationship: either a method
// embedded in place or a reference to a method by identifier.
type MethodRef struct {
	method *Method
	ref    did.DID
}

// Embed returns a reference holding m in place.
func Embed(m *Method) MethodRef {
	return MethodRef{method: m}
}

// Refer returns a reference pointing at id.
func Refer(id did.DID) MethodRef {
	return MethodRef{ref: id}
}

// MethodRefKey is the ordered set key of a MethodRef.
func MethodRefKey(r MethodRef) did.DID { return r.ID() }

// ID returns the embedded method id or the referenced identifier.
func (r MethodRef) ID() did.DID {
	if r.method != nil {
		return r.method.ID()
	}

	return r.ref
}

// Controller returns the embedded method controller. References have none.
func (r MethodRef) Controller() (did.DID, bool) {
	if r.method != nil {
		return r.method.Controller(), true
	}

	return did.DID{}, false
}

func (r MethodRef) IsEmbedded() bool   { return r.method != nil }
func (r MethodRef) IsReferenced() bool { return r.method == nil }

// Embedded returns the embedded method; ok is false for references.
func (r MethodRef) Embedded() (*Method, bool) {
	return r.method, r.method != nil
}

// Referenced returns the referenced identifier; ok is false for embedded methods.
func (r MethodRef) Referenced() (did.DID, bool) {
	if r.method != nil {
		return did.DID{}, false
	}

	return r.ref, true
}

// MarshalJSON writes an embedded method as an object and a reference as a bare string.
func (r MethodRef) MarshalJSON() ([]byte, error) {
	if r.method != nil {
		return json.Marshal(r.method)
	}

	return json.Marshal(r.ref)
}

// UnmarshalJSON accepts either a method object or an identifier string.
func (r *MethodRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id did.DID
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("failed to decode method reference: %w", err)
		}

		*r = Refer(id)

		return nil
	}

	m := new(Method)
	if err := json.Unmarshal(trimmed, m); err != nil {
		return fmt.Errorf("failed to decode embedded method: %w", err)
	}

	*r = Embed(m)

	return nil
}
