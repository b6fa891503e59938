// Package verification models verification methods, the references to them
// held by verification relationships, and the queries used to resolve them.
package verification

import (
	"encoding/json"
	"fmt"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/did"
)

// MethodConfig holds the fields of a verification method under construction.
type MethodConfig struct {
	ID         did.DID
	Controller did.DID
	Type       MethodType
	Data       MethodData
	Properties jsonmap.Object
}

// Method is a DID document verification method.
type Method struct {
	id         did.DID
	controller did.DID
	typ        MethodType
	data       MethodData
	properties jsonmap.Object
}

// NewMethod builds a Method, failing on the first missing field in the order
// id, controller, type, key data.
func NewMethod(cfg MethodConfig) (*Method, error) {
	switch {
	case cfg.ID.IsZero():
		return nil, errs.Missing("Method", "id")
	case cfg.Controller.IsZero():
		return nil, errs.Missing("Method", "controller")
	case cfg.Type == 0:
		return nil, errs.Missing("Method", "key_type")
	case cfg.Data.IsZero():
		return nil, errs.Missing("Method", "key_data")
	}

	return &Method{
		id:         cfg.ID,
		controller: cfg.Controller,
		typ:        cfg.Type,
		data:       cfg.Data,
		properties: cfg.Properties.Clone(),
	}, nil
}

// MethodKey is the ordered set key of a Method.
func MethodKey(m *Method) did.DID { return m.id }

func (m *Method) ID() did.DID         { return m.id }
func (m *Method) Controller() did.DID { return m.controller }
func (m *Method) Type() MethodType    { return m.typ }
func (m *Method) Data() MethodData    { return m.data }

// Properties returns a copy of the extension properties.
func (m *Method) Properties() jsonmap.Object { return m.properties.Clone() }

// SetProperty sets one extension property.
func (m *Method) SetProperty(key string, value interface{}) {
	if m.properties == nil {
		m.properties = jsonmap.Object{}
	}

	m.properties[key] = value
}

// Fragment returns the id fragment prefixed with '#'.
func (m *Method) Fragment() (string, error) {
	if !m.id.HasFragment() {
		return "", fmt.Errorf("%w: %s", errs.ErrMissingFragment, m.id)
	}

	return "#" + m.id.Fragment(), nil
}

// MarshalJSON writes the method with its key material and extension
// properties flattened into one object.
func (m *Method) MarshalJSON() ([]byte, error) {
	core := map[string]interface{}{
		"id":         m.id,
		"controller": m.controller,
		"type":       m.typ,
	}

	if field := m.data.Field(); field != "" {
		core[field] = m.data.member()
	}

	return jsonmap.Flatten(core, m.properties)
}

// UnmarshalJSON reads a method object, keeping unknown members as properties.
func (m *Method) UnmarshalJSON(data []byte) error {
	raw, err := jsonmap.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode verification method: %w", err)
	}

	var cfg MethodConfig

	if _, err := raw.Pop("id", &cfg.ID); err != nil {
		return err
	}

	if _, err := raw.Pop("controller", &cfg.Controller); err != nil {
		return err
	}

	if _, err := raw.Pop("type", &cfg.Type); err != nil {
		return err
	}

	if cfg.Data, err = popMethodData(raw); err != nil {
		return err
	}

	if cfg.Properties, err = raw.Rest(); err != nil {
		return err
	}

	built, err := NewMethod(cfg)
	if err != nil {
		return err
	}

	*m = *built

	return nil
}

var _ json.Marshaler = (*Method)(nil)
