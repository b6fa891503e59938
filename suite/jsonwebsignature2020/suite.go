// Package jsonwebsignature2020 implements the JsonWebSignature2020 suite as an
// EdDSA JWS with detached payload over the JCS-canonicalized document.
package jsonwebsignature2020

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/go-jose/go-jose/v3"

	"github.com/pilacorp/go-diddoc/common/canonical"
	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/suite/ed25519signature2018"
	"github.com/pilacorp/go-diddoc/verification"
)

// Name is the proof type produced by the suite.
const Name = "JsonWebSignature2020"

// Suite signs with EdDSA and emits a detached compact JWS.
type Suite struct{}

// New returns the suite.
func New() *Suite {
	return &Suite{}
}

var _ signature.Suite = (*Suite)(nil)

func (s *Suite) Name() string { return Name }

// MethodType returns the verification method type matching the suite keys.
func (s *Suite) MethodType() verification.MethodType {
	return verification.JwsVerificationKey2020
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

// Sign returns a detached JWS over the canonical payload. secret is a 32-byte
// seed or a 64-byte private key.
func (s *Suite) Sign(payload interface{}, secret []byte) (signature.Data, error) {
	priv, err := ed25519signature2018.PrivateKey(secret)
	if err != nil {
		return signature.Data{}, err
	}

	message, err := canonical.Marshal(payload)
	if err != nil {
		return signature.Data{}, err
	}

	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: jose.EdDSA,
		Key:       priv,
	}, &jose.SignerOptions{})
	if err != nil {
		return signature.Data{}, fmt.Errorf("failed to create jose signer: %w", err)
	}

	jws, err := signer.Sign(message)
	if err != nil {
		return signature.Data{}, fmt.Errorf("failed to sign: %w", err)
	}

	compact, err := jws.DetachedCompactSerialize()
	if err != nil {
		return signature.Data{}, fmt.Errorf("failed to serialize: %w", err)
	}

	return signature.NewJWS(compact), nil
}

// Verify checks a detached JWS against the canonical payload.
func (s *Suite) Verify(payload interface{}, data signature.Data, public []byte) error {
	compact, ok := data.JWS()
	if !ok {
		return fmt.Errorf("%w: expected jws", errs.ErrInvalidSignature)
	}

	if len(public) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: ed25519 public key must be %d bytes", errs.ErrInvalidKey, ed25519.PublicKeySize)
	}

	message, err := canonical.Marshal(payload)
	if err != nil {
		return err
	}

	jws, err := jose.ParseDetached(compact, message)
	if err != nil {
		return fmt.Errorf("%w: failed to parse JWS: %v", errs.ErrInvalidSignature, err)
	}

	if len(jws.Signatures) != 1 || jws.Signatures[0].Header.Algorithm != string(jose.EdDSA) {
		return fmt.Errorf("%w: expected a single EdDSA signature", errs.ErrInvalidSignature)
	}

	if _, err := jws.Verify(ed25519.PublicKey(public)); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidSignature, err)
	}

	return nil
}
