package verification

import (
	"fmt"

	"github.com/pilacorp/go-diddoc/common/errs"
)

// MethodType names the kind of cryptographic material a verification method carries.
type MethodType int

// Supported verification method types. The zero value means unset.
const (
	Ed25519VerificationKey2018 MethodType = iota + 1
	Ed25519VerificationKey2020
	JwsVerificationKey2020
	JSONWebKey2020
	EcdsaSecp256k1VerificationKey2019
	X25519KeyAgreementKey2019
)

var methodTypeNames = map[MethodType]string{
	Ed25519VerificationKey2018:        "Ed25519VerificationKey2018",
	Ed25519VerificationKey2020:        "Ed25519VerificationKey2020",
	JwsVerificationKey2020:            "JwsVerificationKey2020",
	JSONWebKey2020:                    "JsonWebKey2020",
	EcdsaSecp256k1VerificationKey2019: "EcdsaSecp256k1VerificationKey2019",
	X25519KeyAgreementKey2019:         "X25519KeyAgreementKey2019",
}

// ParseMethodType maps a wire name to a MethodType.
func ParseMethodType(s string) (MethodType, error) {
	for t, name := range methodTypeNames {
		if name == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownMethodType, s)
}

// IsValid reports whether t is a known type.
func (t MethodType) IsValid() bool {
	_, ok := methodTypeNames[t]
	return ok
}

func (t MethodType) String() string {
	if name, ok := methodTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("MethodType(%d)", int(t))
}

// MarshalText encodes the type as its wire name.
func (t MethodType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownMethodType, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText decodes the type from its wire name.
func (t *MethodType) UnmarshalText(text []byte) error {
	parsed, err := ParseMethodType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
