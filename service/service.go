// Package service models the service entries of a DID document.
package service

import (
	"fmt"
	"net/url"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/did"
)

// Config holds the fields of a service under construction.
type Config struct {
	ID         did.DID
	Type       string
	Endpoint   *url.URL
	Properties jsonmap.Object
}

// Service is a DID document service endpoint.
type Service struct {
	id         did.DID
	typ        string
	endpoint   *url.URL
	properties jsonmap.Object
}

// NewService builds a Service, failing on the first missing field in the order
// id, type, serviceEndpoint.
func NewService(cfg Config) (*Service, error) {
	switch {
	case cfg.ID.IsZero():
		return nil, errs.Missing("Service", "id")
	case cfg.Type == "":
		return nil, errs.Missing("Service", "type")
	case cfg.Endpoint == nil:
		return nil, errs.Missing("Service", "service_endpoint")
	}

	endpoint := *cfg.Endpoint

	return &Service{
		id:         cfg.ID,
		typ:        cfg.Type,
		endpoint:   &endpoint,
		properties: cfg.Properties.Clone(),
	}, nil
}

// Key is the ordered set key of a Service.
func Key(s *Service) did.DID { return s.id }

func (s *Service) ID() did.DID  { return s.id }
func (s *Service) Type() string { return s.typ }

// Endpoint returns a copy of the service endpoint URL.
func (s *Service) Endpoint() *url.URL {
	endpoint := *s.endpoint
	return &endpoint
}

// Properties returns a copy of the extension properties.
func (s *Service) Properties() jsonmap.Object { return s.properties.Clone() }

// MarshalJSON writes the service with its extension properties flattened.
func (s *Service) MarshalJSON() ([]byte, error) {
	return jsonmap.Flatten(map[string]interface{}{
		"id":              s.id,
		"type":            s.typ,
		"serviceEndpoint": s.endpoint.String(),
	}, s.properties)
}

// UnmarshalJSON reads a service object, keeping unknown members as properties.
func (s *Service) UnmarshalJSON(data []byte) error {
	raw, err := jsonmap.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode service: %w", err)
	}

	var (
		cfg      Config
		endpoint string
	)

	if _, err := raw.Pop("id", &cfg.ID); err != nil {
		return err
	}

	if _, err := raw.Pop("type", &cfg.Type); err != nil {
		return err
	}

	ok, err := raw.Pop("serviceEndpoint", &endpoint)
	if err != nil {
		return err
	}

	if ok {
		if cfg.Endpoint, err = url.Parse(endpoint); err != nil {
			return fmt.Errorf("failed to parse `serviceEndpoint`: %w", err)
		}
	}

	if cfg.Properties, err = raw.Rest(); err != nil {
		return err
	}

	built, err := NewService(cfg)
	if err != nil {
		return err
	}

	*s = *built

	return nil
}
