// Package ed25519signature2018 implements the Ed25519Signature2018 suite over
// JCS-canonicalized payloads with a base58 signatureValue.
package ed25519signature2018

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/pilacorp/go-diddoc/common/canonical"
	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/verification"
)

// Name is the proof type produced by the suite.
const Name = "Ed25519Signature2018"

// Suite signs with Ed25519.
type Suite struct{}

// New returns the suite.
func New() *Suite {
	return &Suite{}
}

var _ signature.Suite = (*Suite)(nil)

func (s *Suite) Name() string { return Name }

// MethodType returns the verification method type matching the suite keys.
func (s *Suite) MethodType() verification.MethodType {
	return verification.Ed25519VerificationKey2018
}

// KeyData encodes a public key the way documents carry it for this suite.
func (s *Suite) KeyData(public []byte) verification.MethodData {
	return verification.NewBase58FromBytes(public)
}

// GenerateKeyPair returns a fresh public key and 32-byte seed.
func (s *Suite) GenerateKeyPair() (public, secret []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return pub, priv.Seed(), nil
}

// Sign signs the canonical form of payload. secret is a 32-byte seed or a
// 64-byte private key.
func (s *Suite) Sign(payload interface{}, secret []byte) (signature.Data, error) {
	priv, err := PrivateKey(secret)
	if err != nil {
		return signature.Data{}, err
	}

	message, err := canonical.Marshal(payload)
	if err != nil {
		return signature.Data{}, err
	}

	return signature.NewSignatureValue(base58.Encode(ed25519.Sign(priv, message))), nil
}

// Verify checks a base58 signatureValue against the canonical form of payload.
func (s *Suite) Verify(payload interface{}, data signature.Data, public []byte) error {
	value, ok := data.SignatureValue()
	if !ok {
		return fmt.Errorf("%w: expected signatureValue", errs.ErrInvalidSignature)
	}

	if len(public) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: ed25519 public key must be %d bytes", errs.ErrInvalidKey, ed25519.PublicKeySize)
	}

	sig := base58.Decode(value)
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: malformed signatureValue", errs.ErrInvalidSignature)
	}

	message, err := canonical.Marshal(payload)
	if err != nil {
		return err
	}

	if !ed25519.Verify(ed25519.PublicKey(public), message, sig) {
		return errs.ErrInvalidSignature
	}

	return nil
}

// PrivateKey expands a 32-byte seed or validates a 64-byte private key.
func PrivateKey(secret []byte) (ed25519.PrivateKey, error) {
	switch len(secret) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(secret), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(secret), nil
	default:
		return nil, fmt.Errorf("%w: ed25519 secret must be %d or %d bytes", errs.ErrInvalidKey, ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}
