package signature

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/verification"
)

var logger = log.New("diddoc/signature")

// Getter exposes the proof attached to a payload.
type Getter interface {
	Proof() *Signature
}

// Setter is a payload whose proof can be replaced.
type Setter interface {
	Getter
	SetProof(proof *Signature)
}

// KeyResolver maps a method query to raw public key bytes.
type KeyResolver interface {
	ResolveKey(q verification.MethodQuery) ([]byte, error)
}

// KeyResolverFunc adapts a function to KeyResolver.
type KeyResolverFunc func(q verification.MethodQuery) ([]byte, error)

// ResolveKey calls f(q).
func (f KeyResolverFunc) ResolveKey(q verification.MethodQuery) ([]byte, error) {
	return f(q)
}

// Sign attaches a fresh proof built from options to payload, replacing any
// existing proof, and fills its value with the suite output. If the suite
// fails the empty proof stays attached.
func Sign(payload Setter, suite Suite, options Options, secret []byte) error {
	payload.SetProof(New(suite.Name(), options))

	logger.Debugf("signing with %s using %s", suite.Name(), options.VerificationMethod)

	data, err := suite.Sign(payload, secret)
	if err != nil {
		return fmt.Errorf("failed to sign payload: %w", err)
	}

	payload.Proof().SetData(data)

	return nil
}

// Verify checks the proof attached to payload.
//
// The key is selected by the proof's verificationMethod within the scope named
// by its proofPurpose. While the suite runs the proof value is hidden from
// serialization; it is restored before Verify returns. The payload must not be
// shared with other goroutines for the duration of the call.
func Verify(payload Getter, resolver KeyResolver, suite Suite) error {
	proof := payload.Proof()
	if proof == nil {
		return errs.ErrSignatureNotFound
	}

	q, err := proof.Options.Query()
	if err != nil {
		return err
	}

	public, err := resolver.ResolveKey(q)
	if err != nil {
		return fmt.Errorf("failed to resolve key %s: %w", q, err)
	}

	proof.Value().hide()
	defer proof.Value().show()

	logger.Debugf("verifying %s proof with %s", proof.Type(), q)

	if err := suite.Verify(payload, proof.Data(), public); err != nil {
		logger.Warnf("proof verification failed for %s: %s", proof.VerificationMethod, err)
		return err
	}

	return nil
}
