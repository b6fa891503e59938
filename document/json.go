package document

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/verification"
)

// ParseOpt configures Parse.
type ParseOpt func(*parseOptions)

type parseOptions struct {
	validate bool
}

// WithSchemaValidation checks the raw document against the DID document
// schema before decoding.
func WithSchemaValidation() ParseOpt {
	return func(o *parseOptions) {
		o.validate = true
	}
}

// Parse decodes a DID document from JSON.
func Parse(raw []byte, opts ...ParseOpt) (*Document, error) {
	options := &parseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.validate {
		if err := ValidateJSON(raw); err != nil {
			return nil, err
		}
	}

	doc := new(Document)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return doc, nil
}

// coreMembers returns the document members other than extension properties.
func (d *Document) coreMembers() map[string]interface{} {
	core := map[string]interface{}{"id": d.id}

	if !d.controller.IsZero() {
		core["controller"] = d.controller
	}

	if len(d.alsoKnownAs) > 0 {
		aka := make([]string, 0, len(d.alsoKnownAs))
		for _, u := range d.alsoKnownAs {
			aka = append(aka, u.String())
		}

		core["alsoKnownAs"] = aka
	}

	if !d.verificationMethod.IsEmpty() {
		core["verificationMethod"] = d.verificationMethod
	}

	for _, scope := range verification.Scopes[1:] {
		if set := d.Relationship(scope); !set.IsEmpty() {
			core[scope.String()] = set
		}
	}

	if !d.service.IsEmpty() {
		core["service"] = d.service
	}

	return core
}

// MarshalJSON writes the document with extension properties flattened.
func (d *Document) MarshalJSON() ([]byte, error) {
	return jsonmap.Flatten(d.coreMembers(), d.properties)
}

// MarshalWith writes the document with extra members added next to the
// extension properties. Core members and extras both override properties;
// properties named in reserved are never written.
func (d *Document) MarshalWith(extra map[string]interface{}, reserved ...string) ([]byte, error) {
	core := d.coreMembers()
	for k, v := range extra {
		if _, ok := core[k]; !ok {
			core[k] = v
		}
	}

	return jsonmap.Flatten(core, d.properties.Without(reserved...))
}

// UnmarshalJSON reads a document, keeping unknown members as properties.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw, err := jsonmap.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	cfg, err := popConfig(raw)
	if err != nil {
		return err
	}

	built, err := New(cfg)
	if err != nil {
		return err
	}

	*d = *built

	return nil
}

// popConfig pops every core member out of raw and keeps the remainder as properties.
func popConfig(raw jsonmap.Raw) (Config, error) {
	var (
		cfg Config
		aka []string
	)

	if _, err := raw.Pop("id", &cfg.ID); err != nil {
		return cfg, err
	}

	if _, err := raw.Pop("controller", &cfg.Controller); err != nil {
		return cfg, err
	}

	if _, err := raw.Pop("alsoKnownAs", &aka); err != nil {
		return cfg, err
	}

	for _, s := range aka {
		u, err := url.Parse(s)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse `alsoKnownAs`: %w", err)
		}

		cfg.AlsoKnownAs = append(cfg.AlsoKnownAs, u)
	}

	if _, err := raw.Pop("verificationMethod", &cfg.VerificationMethod); err != nil {
		return cfg, err
	}

	refs := map[verification.MethodScope]*[]verification.MethodRef{
		verification.Authentication:       &cfg.Authentication,
		verification.AssertionMethod:      &cfg.AssertionMethod,
		verification.KeyAgreement:         &cfg.KeyAgreement,
		verification.CapabilityDelegation: &cfg.CapabilityDelegation,
		verification.CapabilityInvocation: &cfg.CapabilityInvocation,
	}

	for scope, dst := range refs {
		if _, err := raw.Pop(scope.String(), dst); err != nil {
			return cfg, err
		}
	}

	if _, err := raw.Pop("service", &cfg.Service); err != nil {
		return cfg, err
	}

	var err error
	if cfg.Properties, err = raw.Rest(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
