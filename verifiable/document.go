// Package verifiable attaches proofs to DID documents and to payloads signed
// with keys held by a document or a single verification method.
package verifiable

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/document"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/verification"
)

var logger = log.New("diddoc/verifiable")

const proofMember = "proof"

// Document is a DID document carrying an optional proof signed by one of its
// own verification methods.
//
// The "proof" member belongs to the proof slot. An extension property of the
// wrapped document under that name is never serialized, signed or verified.
type Document struct {
	*document.Document
	proof *signature.Signature
}

var (
	_ signature.Setter      = (*Document)(nil)
	_ signature.KeyResolver = (*Document)(nil)
)

// New wraps doc without a proof.
func New(doc *document.Document) *Document {
	return &Document{Document: doc}
}

// WithProof wraps doc with proof attached.
func WithProof(doc *document.Document, proof *signature.Signature) *Document {
	return &Document{Document: doc, proof: proof}
}

// Proof returns the attached proof, or nil.
func (d *Document) Proof() *signature.Signature { return d.proof }

// SetProof replaces the attached proof.
func (d *Document) SetProof(proof *signature.Signature) { d.proof = proof }

// ResolveKey returns the decoded key of the document method selected by q.
func (d *Document) ResolveKey(q verification.MethodQuery) ([]byte, error) {
	return d.TryResolveBytes(q)
}

// Sign signs the document with secret, replacing any existing proof.
func (d *Document) Sign(suite signature.Suite, options signature.Options, secret []byte) error {
	return signature.Sign(d, suite, options, secret)
}

// Verify checks the proof against the document's own methods.
func (d *Document) Verify(suite signature.Suite) error {
	return signature.Verify(d, d, suite)
}

// VerifyWith checks the proof using the suite registered under the proof type.
func (d *Document) VerifyWith(registry *signature.Registry) error {
	if d.proof == nil {
		return errs.ErrSignatureNotFound
	}

	suite, err := registry.Get(d.proof.Type())
	if err != nil {
		return err
	}

	return d.Verify(suite)
}

// MarshalJSON writes the document with its proof under "proof".
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.Document == nil {
		return nil, fmt.Errorf("failed to marshal verifiable document: %w", errs.ErrInvalidDocument)
	}

	var extra map[string]interface{}
	if d.proof != nil {
		extra = map[string]interface{}{proofMember: d.proof}
	}

	return d.Document.MarshalWith(extra, proofMember)
}

// UnmarshalJSON reads a document, taking "proof" out of the extension
// properties.
func (d *Document) UnmarshalJSON(data []byte) error {
	return d.decode(data)
}

func (d *Document) decode(data []byte, opts ...document.ParseOpt) error {
	raw, err := jsonmap.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode verifiable document: %w", err)
	}

	var proof *signature.Signature
	if _, err := raw.Pop(proofMember, &proof); err != nil {
		return err
	}

	rest, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to decode verifiable document: %w", err)
	}

	doc, err := document.Parse(rest, opts...)
	if err != nil {
		return err
	}

	d.Document = doc
	d.proof = proof

	return nil
}

// Parse decodes a verifiable document from JSON.
func Parse(raw []byte, opts ...document.ParseOpt) (*Document, error) {
	d := new(Document)
	if err := d.decode(raw, opts...); err != nil {
		return nil, err
	}

	logger.Debugf("parsed document %s (signed: %t)", d.ID(), d.proof != nil)

	return d, nil
}
