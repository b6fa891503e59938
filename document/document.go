// Package document implements the DID document data model and verification
// method resolution.
package document

import (
	"fmt"
	"net/url"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/common/orderedset"
	"github.com/pilacorp/go-diddoc/did"
	"github.com/pilacorp/go-diddoc/service"
	"github.com/pilacorp/go-diddoc/verification"
)

var logger = log.New("diddoc/document")

type (
	// MethodSet is the flat verificationMethod collection.
	MethodSet = orderedset.Set[*verification.Method, did.DID]
	// RefSet is a verification relationship collection.
	RefSet = orderedset.Set[verification.MethodRef, did.DID]
	// ServiceSet is the service collection.
	ServiceSet = orderedset.Set[*service.Service, did.DID]
)

// Config holds the fields of a document under construction.
type Config struct {
	ID                   did.DID
	Controller           did.DID
	AlsoKnownAs          []*url.URL
	VerificationMethod   []*verification.Method
	Authentication       []verification.MethodRef
	AssertionMethod      []verification.MethodRef
	KeyAgreement         []verification.MethodRef
	CapabilityDelegation []verification.MethodRef
	CapabilityInvocation []verification.MethodRef
	Service              []*service.Service
	Properties           jsonmap.Object
}

// Document is a DID document.
type Document struct {
	id                   did.DID
	controller           did.DID
	alsoKnownAs          []*url.URL
	verificationMethod   *MethodSet
	authentication       *RefSet
	assertionMethod      *RefSet
	keyAgreement         *RefSet
	capabilityDelegation *RefSet
	capabilityInvocation *RefSet
	service              *ServiceSet
	properties           jsonmap.Object
}

// New builds a Document. It fails when the id is missing or when any
// collection holds two entries with the same id.
func New(cfg Config) (*Document, error) {
	if cfg.ID.IsZero() {
		return nil, errs.Missing("Document", "id")
	}

	if i := nilEntry(cfg.VerificationMethod); i >= 0 {
		return nil, fmt.Errorf("%w: null verificationMethod entry at position %d", errs.ErrInvalidDocument, i)
	}

	if i := nilEntry(cfg.Service); i >= 0 {
		return nil, fmt.Errorf("%w: null service entry at position %d", errs.ErrInvalidDocument, i)
	}

	doc := &Document{
		id:          cfg.ID,
		controller:  cfg.Controller,
		alsoKnownAs: append([]*url.URL(nil), cfg.AlsoKnownAs...),
		properties:  cfg.Properties.Clone(),
	}

	if doc.properties == nil {
		doc.properties = jsonmap.Object{}
	}

	var err error

	if doc.verificationMethod, err = orderedset.FromSlice(verification.MethodKey, cfg.VerificationMethod); err != nil {
		return nil, fmt.Errorf("failed to build verificationMethod: %w", err)
	}

	refs := []struct {
		scope verification.MethodScope
		dst   **RefSet
		items []verification.MethodRef
	}{
		{verification.Authentication, &doc.authentication, cfg.Authentication},
		{verification.AssertionMethod, &doc.assertionMethod, cfg.AssertionMethod},
		{verification.KeyAgreement, &doc.keyAgreement, cfg.KeyAgreement},
		{verification.CapabilityDelegation, &doc.capabilityDelegation, cfg.CapabilityDelegation},
		{verification.CapabilityInvocation, &doc.capabilityInvocation, cfg.CapabilityInvocation},
	}

	for _, r := range refs {
		if *r.dst, err = orderedset.FromSlice(verification.MethodRefKey, r.items); err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", r.scope, err)
		}
	}

	if doc.service, err = orderedset.FromSlice(service.Key, cfg.Service); err != nil {
		return nil, fmt.Errorf("failed to build service: %w", err)
	}

	return doc, nil
}

// nilEntry returns the position of the first nil item, or -1.
func nilEntry[T any](items []*T) int {
	for i, item := range items {
		if item == nil {
			return i
		}
	}

	return -1
}

// ID returns the document subject.
func (d *Document) ID() did.DID { return d.id }

// Controller returns the document controller when one is set.
func (d *Document) Controller() (did.DID, bool) {
	return d.controller, !d.controller.IsZero()
}

// SetController replaces the controller. The zero DID clears it.
func (d *Document) SetController(controller did.DID) {
	d.controller = controller
}

// AlsoKnownAs returns a copy of the alternative identifiers.
func (d *Document) AlsoKnownAs() []*url.URL {
	return append([]*url.URL(nil), d.alsoKnownAs...)
}

// AddAlsoKnownAs appends an alternative identifier.
func (d *Document) AddAlsoKnownAs(u *url.URL) {
	d.alsoKnownAs = append(d.alsoKnownAs, u)
}

// The collection accessors return the live sets; mutations are visible to
// later resolution.

func (d *Document) VerificationMethod() *MethodSet { return d.verificationMethod }
func (d *Document) Authentication() *RefSet        { return d.authentication }
func (d *Document) AssertionMethod() *RefSet       { return d.assertionMethod }
func (d *Document) KeyAgreement() *RefSet          { return d.keyAgreement }
func (d *Document) CapabilityDelegation() *RefSet  { return d.capabilityDelegation }
func (d *Document) CapabilityInvocation() *RefSet  { return d.capabilityInvocation }
func (d *Document) Service() *ServiceSet           { return d.service }

// Relationship returns the relationship set for scope. The VerificationMethod
// scope has no relationship set and yields nil.
func (d *Document) Relationship(scope verification.MethodScope) *RefSet {
	switch scope {
	case verification.Authentication:
		return d.authentication
	case verification.AssertionMethod:
		return d.assertionMethod
	case verification.KeyAgreement:
		return d.keyAgreement
	case verification.CapabilityDelegation:
		return d.capabilityDelegation
	case verification.CapabilityInvocation:
		return d.capabilityInvocation
	default:
		return nil
	}
}

// Properties returns the live extension property bag.
func (d *Document) Properties() jsonmap.Object { return d.properties }

// Methods returns every embedded verification method, the flat collection
// first and then each relationship in scope order.
func (d *Document) Methods() []*verification.Method {
	out := d.verificationMethod.Items()

	for _, scope := range verification.Scopes[1:] {
		set := d.Relationship(scope)
		for i := 0; i < set.Len(); i++ {
			if m, ok := set.At(i).Embedded(); ok {
				out = append(out, m)
			}
		}
	}

	return out
}
