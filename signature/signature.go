package signature

import (
	"encoding/json"
	"fmt"
)

// Signature is the proof attached to a payload.
type Signature struct {
	typ   string
	value Value
	Options
}

// New returns an empty proof of the given suite type.
func New(typ string, options Options) *Signature {
	return &Signature{typ: typ, Options: options}
}

// Type returns the suite name.
func (s *Signature) Type() string { return s.typ }

// Value returns the live proof value slot.
func (s *Signature) Value() *Value { return &s.value }

// Data returns the stored proof value data.
func (s *Signature) Data() Data { return s.value.Data() }

// SetData stores the proof value data.
func (s *Signature) SetData(data Data) { s.value.Set(data) }

type signatureJSON struct {
	Type           string `json:"type"`
	JWS            string `json:"jws,omitempty"`
	ProofValue     string `json:"proofValue,omitempty"`
	SignatureValue string `json:"signatureValue,omitempty"`
	Options
}

// MarshalJSON writes the proof. The value member is omitted while absent or hidden.
func (s *Signature) MarshalJSON() ([]byte, error) {
	out := signatureJSON{Type: s.typ, Options: s.Options}

	if !s.value.IsNone() {
		switch d := s.value.Data(); d.Kind() {
		case KindJWS:
			out.JWS = d.String()
		case KindProofValue:
			out.ProofValue = d.String()
		case KindSignatureValue:
			out.SignatureValue = d.String()
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads a proof object. An empty jws, proofValue or
// signatureValue string leaves the value absent.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var in signatureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode proof: %w", err)
	}

	*s = Signature{typ: in.Type, Options: in.Options}

	switch {
	case in.JWS != "":
		s.value.Set(NewJWS(in.JWS))
	case in.ProofValue != "":
		s.value.Set(NewProofValue(in.ProofValue))
	case in.SignatureValue != "":
		s.value.Set(NewSignatureValue(in.SignatureValue))
	}

	return nil
}
