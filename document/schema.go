package document

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pilacorp/go-diddoc/common/errs"
)

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"$ref": "#/definitions/did"},
    "controller": {"$ref": "#/definitions/did"},
    "alsoKnownAs": {"type": "array", "items": {"type": "string"}},
    "verificationMethod": {"type": "array", "items": {"$ref": "#/definitions/method"}},
    "authentication": {"$ref": "#/definitions/relationship"},
    "assertionMethod": {"$ref": "#/definitions/relationship"},
    "keyAgreement": {"$ref": "#/definitions/relationship"},
    "capabilityDelegation": {"$ref": "#/definitions/relationship"},
    "capabilityInvocation": {"$ref": "#/definitions/relationship"},
    "service": {"type": "array", "items": {"$ref": "#/definitions/service"}}
  },
  "definitions": {
    "did": {"type": "string", "pattern": "^did:[a-z0-9]+:"},
    "method": {
      "type": "object",
      "required": ["id", "controller", "type"],
      "properties": {
        "id": {"$ref": "#/definitions/did"},
        "controller": {"$ref": "#/definitions/did"},
        "type": {"type": "string"}
      }
    },
    "relationship": {
      "type": "array",
      "items": {
        "oneOf": [
          {"$ref": "#/definitions/did"},
          {"$ref": "#/definitions/method"}
        ]
      }
    },
    "service": {
      "type": "object",
      "required": ["id", "type", "serviceEndpoint"],
      "properties": {
        "id": {"$ref": "#/definitions/did"},
        "type": {"type": "string"},
        "serviceEndpoint": {"type": "string"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})

	return compiledSchema, schemaErr
}

// ValidateJSON checks the shape of an encoded DID document.
func ValidateJSON(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to load document schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}

		return fmt.Errorf("%w: %s", errs.ErrInvalidDocument, strings.Join(reasons, "; "))
	}

	return nil
}
