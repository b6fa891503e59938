// Package signature implements the embedded proof protocol: a proof object
// attached to a payload, pluggable signature suites, and the sign and verify
// procedures that keep the proof value out of the signed bytes.
package signature

// DataKind tags the member a proof value is carried in.
type DataKind int

const (
	KindNone DataKind = iota
	KindJWS
	KindProofValue
	KindSignatureValue
)

// Data is the encoded output of a signature suite.
// The zero value carries no signature.
type Data struct {
	kind  DataKind
	value string
}

// NewJWS returns data carried in the `jws` member.
func NewJWS(value string) Data { return Data{kind: KindJWS, value: value} }

// NewProofValue returns data carried in the `proofValue` member.
func NewProofValue(value string) Data { return Data{kind: KindProofValue, value: value} }

// NewSignatureValue returns data carried in the `signatureValue` member.
func NewSignatureValue(value string) Data { return Data{kind: KindSignatureValue, value: value} }

func (d Data) Kind() DataKind         { return d.kind }
func (d Data) IsNone() bool           { return d.kind == KindNone }
func (d Data) IsJWS() bool            { return d.kind == KindJWS }
func (d Data) IsProofValue() bool     { return d.kind == KindProofValue }
func (d Data) IsSignatureValue() bool { return d.kind == KindSignatureValue }

// String returns the encoded value, or "" for no data.
func (d Data) String() string { return d.value }

// JWS returns the value when carried as `jws`.
func (d Data) JWS() (string, bool) { return d.value, d.kind == KindJWS }

// ProofValue returns the value when carried as `proofValue`.
func (d Data) ProofValue() (string, bool) { return d.value, d.kind == KindProofValue }

// SignatureValue returns the value when carried as `signatureValue`.
func (d Data) SignatureValue() (string, bool) { return d.value, d.kind == KindSignatureValue }

// Value is the proof value slot. While hidden it serializes as absent but
// keeps its data.
type Value struct {
	data   Data
	hidden bool
}

// Data returns the stored data, whether or not the value is hidden.
func (v *Value) Data() Data { return v.data }

// Set stores new data.
func (v *Value) Set(data Data) { v.data = data }

// IsNone reports whether the value is absent from serialization.
func (v *Value) IsNone() bool { return v.data.IsNone() || v.hidden }

// IsHidden reports whether the value is temporarily hidden.
func (v *Value) IsHidden() bool { return v.hidden }

func (v *Value) hide() { v.hidden = true }
func (v *Value) show() { v.hidden = false }
