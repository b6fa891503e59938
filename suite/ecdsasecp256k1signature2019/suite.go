// Package ecdsasecp256k1signature2019 implements the EcdsaSecp256k1Signature2019
// suite: sha256 over the JCS-canonicalized payload, signed with secp256k1 and
// carried as a hex proofValue.
package ecdsasecp256k1signature2019

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/pilacorp/go-diddoc/common/canonical"
	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/verification"
)

// Name is the proof type produced by the suite.
const Name = "EcdsaSecp256k1Signature2019"

const (
	privateKeySize      = 32
	recoverableSigSize  = 65
	compactSigSize      = 64
	compressedPubKeyLen = 33
)

// Suite signs with secp256k1.
type Suite struct{}

// New returns the suite.
func New() *Suite {
	return &Suite{}
}

var _ signature.Suite = (*Suite)(nil)

func (s *Suite) Name() string { return Name }

// MethodType returns the verification method type matching the suite keys.
func (s *Suite) MethodType() verification.MethodType {
	return verification.EcdsaSecp256k1VerificationKey2019
}

// KeyData encodes a public key the way documents carry it for this suite.
func (s *Suite) KeyData(public []byte) verification.MethodData {
	return verification.NewHexFromBytes(public)
}

// GenerateKeyPair returns a fresh compressed public key and 32-byte private key.
func (s *Suite) GenerateKeyPair() (public, secret []byte, err error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return priv.PubKey().SerializeCompressed(), priv.Serialize(), nil
}

// Sign signs the sha256 digest of the canonical payload and returns the 65-byte
// recoverable signature in hex.
func (s *Suite) Sign(payload interface{}, secret []byte) (signature.Data, error) {
	if len(secret) != privateKeySize {
		return signature.Data{}, fmt.Errorf("%w: private key must be %d bytes", errs.ErrInvalidKey, privateKeySize)
	}

	priv, err := crypto.ToECDSA(secret)
	if err != nil {
		return signature.Data{}, &errs.KeyError{Encoding: errs.EncodingSecp256k1, Err: err}
	}

	hash, err := digest(payload)
	if err != nil {
		return signature.Data{}, err
	}

	sig, err := crypto.Sign(hash, priv)
	if err != nil {
		return signature.Data{}, fmt.Errorf("failed to sign digest: %w", err)
	}

	return signature.NewProofValue(hex.EncodeToString(sig)), nil
}

// Verify checks a hex proofValue. A 65-byte signature is checked by public key
// recovery, a 64-byte one directly. The public key may be compressed or not.
func (s *Suite) Verify(payload interface{}, data signature.Data, public []byte) error {
	value, ok := data.ProofValue()
	if !ok {
		return fmt.Errorf("%w: expected proofValue", errs.ErrInvalidSignature)
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return fmt.Errorf("%w: malformed proofValue: %v", errs.ErrInvalidSignature, err)
	}

	pub, err := CompressPublicKey(public)
	if err != nil {
		return err
	}

	hash, err := digest(payload)
	if err != nil {
		return err
	}

	var valid bool

	switch len(sig) {
	case recoverableSigSize:
		valid = verifyRecoverable(pub, hash, sig)
	case compactSigSize:
		valid = crypto.VerifySignature(pub, hash, sig)
	default:
		return fmt.Errorf("%w: signature must be %d or %d bytes", errs.ErrInvalidSignature, compactSigSize, recoverableSigSize)
	}

	if !valid {
		return errs.ErrInvalidSignature
	}

	return nil
}

// CompressPublicKey parses a compressed or uncompressed secp256k1 public key
// and returns its 33-byte compressed form.
func CompressPublicKey(public []byte) ([]byte, error) {
	pub, err := secp256k1.ParsePubKey(public)
	if err != nil {
		return nil, &errs.KeyError{Encoding: errs.EncodingSecp256k1, Err: err}
	}

	return pub.SerializeCompressed(), nil
}

func verifyRecoverable(pub, hash, sig []byte) bool {
	recovered, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return false
	}

	key, err := crypto.UnmarshalPubkey(recovered)
	if err != nil {
		return false
	}

	compressed := crypto.CompressPubkey(key)

	return len(compressed) == compressedPubKeyLen && bytes.Equal(compressed, pub)
}

func digest(payload interface{}) ([]byte, error) {
	message, err := canonical.Marshal(payload)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(message)

	return hash[:], nil
}
