// Package errs defines the error taxonomy shared by every DID document package.
//
// Sentinels are matched with errors.Is. BuilderError and KeyError carry extra
// context and match their sentinel through Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBuilder is returned when a required field is missing at construction time.
	ErrInvalidBuilder = errors.New("invalid builder")
	// ErrInvalidSet is returned when bulk construction of an ordered set meets a duplicate.
	ErrInvalidSet = errors.New("invalid set: duplicate item")
	// ErrInvalidKey is returned when key material cannot be decoded to raw bytes.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidIdentifier is returned when a DID or DID URL cannot be parsed.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrVerificationMethodNotFound is returned when a method query has no match.
	ErrVerificationMethodNotFound = errors.New("verification method not found")
	// ErrSignatureNotFound is returned when a payload carries no proof.
	ErrSignatureNotFound = errors.New("signature not found")
	// ErrUnknownMethodScope is returned for an unrecognised verification relationship name.
	ErrUnknownMethodScope = errors.New("unknown method scope")
	// ErrUnknownMethodType is returned for an unrecognised verification method type.
	ErrUnknownMethodType = errors.New("unknown method type")
	// ErrMissingFragment is returned when an identifier has no fragment but one is required.
	ErrMissingFragment = errors.New("verification method missing fragment")
	// ErrInvalidDocument is returned when a document fails schema validation or holds a null entry.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnknownSuite is returned when no signature suite is registered under a name.
	ErrUnknownSuite = errors.New("unknown signature suite")
	// ErrInvalidSignature is returned by suites when a proof does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
)

// BuilderError names the first missing required field of a validating constructor.
type BuilderError struct {
	Name  string
	Field string
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("invalid builder(%s): missing `%s`", e.Name, e.Field)
}

// Is reports ErrInvalidBuilder as a match.
func (e *BuilderError) Is(target error) bool {
	return target == ErrInvalidBuilder
}

// Missing returns a BuilderError for the named type and field.
func Missing(name, field string) error {
	return &BuilderError{Name: name, Field: field}
}

// Key encodings reported by KeyError.
const (
	EncodingBase58    = "base58"
	EncodingHex       = "hex"
	EncodingMultibase = "multibase"
	EncodingJWK       = "jwk"
	EncodingSecp256k1 = "secp256k1"
)

// KeyError describes a key material decode failure.
type KeyError struct {
	Encoding string
	Err      error
}

func (e *KeyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid key: %s", e.Encoding)
	}

	return fmt.Sprintf("invalid key: %s: %v", e.Encoding, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidKey as a match.
func (e *KeyError) Is(target error) bool {
	return target == ErrInvalidKey
}
