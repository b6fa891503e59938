package signature

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/verification"
)

// Options are the proof members describing how and why a payload was signed.
//
// The optional members use the empty string for absent: a proof read with
// "nonce": "" (or an empty proofPurpose, created or domain) is written back
// without that member, and an empty proofPurpose selects the
// verificationMethod scope.
type Options struct {
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose,omitempty"`
	Created            string `json:"created,omitempty"`
	Nonce              string `json:"nonce,omitempty"`
	Domain             string `json:"domain,omitempty"`
}

// Opt sets an optional proof member.
type Opt func(*Options)

// WithPurpose sets proofPurpose to the relationship name of scope.
func WithPurpose(scope verification.MethodScope) Opt {
	return func(o *Options) {
		o.ProofPurpose = scope.String()
	}
}

// WithCreated sets created to t in RFC 3339 UTC.
func WithCreated(t time.Time) Opt {
	return func(o *Options) {
		o.Created = t.UTC().Format(time.RFC3339)
	}
}

// WithNonce sets the nonce.
func WithNonce(nonce string) Opt {
	return func(o *Options) {
		o.Nonce = nonce
	}
}

// WithRandomNonce sets the nonce to a random UUID.
func WithRandomNonce() Opt {
	return func(o *Options) {
		o.Nonce = uuid.NewString()
	}
}

// WithDomain sets the domain.
func WithDomain(domain string) Opt {
	return func(o *Options) {
		o.Domain = domain
	}
}

// NewOptions returns options naming verificationMethod as the signing key.
func NewOptions(verificationMethod string, opts ...Opt) Options {
	o := Options{VerificationMethod: verificationMethod}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// OptionsFor returns options for a resolved method, with the resolution scope
// as proof purpose.
func OptionsFor(w verification.MethodWrap, opts ...Opt) Options {
	return NewOptions(w.ID().String(), append([]Opt{WithPurpose(w.Scope())}, opts...)...)
}

// Query returns the method query encoded by the options. An absent purpose
// selects the VerificationMethod scope; an unknown one is an error matching
// both ErrVerificationMethodNotFound and ErrUnknownMethodScope.
func (o Options) Query() (verification.MethodQuery, error) {
	q := verification.Query(o.VerificationMethod)

	if o.ProofPurpose == "" {
		return q, nil
	}

	scope, err := verification.ParseMethodScope(o.ProofPurpose)
	if err != nil {
		return verification.MethodQuery{}, fmt.Errorf("%w: %w", errs.ErrVerificationMethodNotFound, err)
	}

	return q.In(scope), nil
}
