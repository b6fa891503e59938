package verification

import (
	"fmt"

	"github.com/pilacorp/go-diddoc/common/errs"
)

// MethodScope names one of the verification relationships of a document.
// The zero value is VerificationMethod, the flat method collection.
type MethodScope int

const (
	VerificationMethod MethodScope = iota
	Authentication
	AssertionMethod
	KeyAgreement
	CapabilityDelegation
	CapabilityInvocation
)

// Scopes lists every scope in document order.
var Scopes = []MethodScope{
	VerificationMethod,
	Authentication,
	AssertionMethod,
	KeyAgreement,
	CapabilityDelegation,
	CapabilityInvocation,
}

var scopeNames = [...]string{
	VerificationMethod:   "verificationMethod",
	Authentication:       "authentication",
	AssertionMethod:      "assertionMethod",
	KeyAgreement:         "keyAgreement",
	CapabilityDelegation: "capabilityDelegation",
	CapabilityInvocation: "capabilityInvocation",
}

// ParseMethodScope maps a relationship name to a MethodScope.
func ParseMethodScope(s string) (MethodScope, error) {
	for scope, name := range scopeNames {
		if name == s {
			return MethodScope(scope), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownMethodScope, s)
}

func (s MethodScope) String() string {
	if s >= 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}

	return fmt.Sprintf("MethodScope(%d)", int(s))
}

// MarshalText encodes the scope as its relationship name.
func (s MethodScope) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(scopeNames) {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownMethodScope, int(s))
	}

	return []byte(scopeNames[s]), nil
}

// UnmarshalText decodes the scope from its relationship name.
func (s *MethodScope) UnmarshalText(text []byte) error {
	parsed, err := ParseMethodScope(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
