package verification

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
)

// DataKind tags the encoding of a MethodData value.
type DataKind int

const (
	dataNone DataKind = iota
	DataBase58
	DataHex
	DataMultibase
	DataJWK
)

// Wire names of the key material members.
const (
	FieldBase58    = "publicKeyBase58"
	FieldHex       = "publicKeyHex"
	FieldMultibase = "publicKeyMultibase"
	FieldJWK       = "publicKeyJwk"
)

// dataFields lists key material members in lookup order.
var dataFields = []struct {
	kind  DataKind
	field string
}{
	{DataBase58, FieldBase58},
	{DataHex, FieldHex},
	{DataMultibase, FieldMultibase},
	{DataJWK, FieldJWK},
}

var errInvalidBase58 = errors.New("invalid base58 string")

// MethodData is the public key material of a verification method.
type MethodData struct {
	kind  DataKind
	value string
	jwk   jsonmap.Object
}

// NewBase58 returns key material encoded as publicKeyBase58.
func NewBase58(value string) MethodData {
	return MethodData{kind: DataBase58, value: value}
}

// NewBase58FromBytes encodes raw key bytes as publicKeyBase58.
func NewBase58FromBytes(key []byte) MethodData {
	return NewBase58(base58.Encode(key))
}

// NewHex returns key material encoded as publicKeyHex.
func NewHex(value string) MethodData {
	return MethodData{kind: DataHex, value: value}
}

// NewHexFromBytes encodes raw key bytes as publicKeyHex.
func NewHexFromBytes(key []byte) MethodData {
	return NewHex(hex.EncodeToString(key))
}

// NewMultibase returns key material encoded as publicKeyMultibase.
func NewMultibase(value string) MethodData {
	return MethodData{kind: DataMultibase, value: value}
}

// NewJWK returns key material carried as a JSON Web Key object.
func NewJWK(jwk jsonmap.Object) MethodData {
	return MethodData{kind: DataJWK, jwk: jwk.Clone()}
}

// Kind returns the encoding tag. The zero MethodData has no kind.
func (d MethodData) Kind() DataKind { return d.kind }

// IsZero reports whether no key material is set.
func (d MethodData) IsZero() bool { return d.kind == dataNone }

// Value returns the encoded string for text encodings.
func (d MethodData) Value() string { return d.value }

// JWK returns a copy of the JSON Web Key object, or nil for text encodings.
func (d MethodData) JWK() jsonmap.Object { return d.jwk.Clone() }

// Field returns the JSON member name carrying this material.
func (d MethodData) Field() string {
	for _, f := range dataFields {
		if f.kind == d.kind {
			return f.field
		}
	}

	return ""
}

// TryDecode returns the raw public key bytes.
// JWK material is never decoded and always yields an invalid key error.
func (d MethodData) TryDecode() ([]byte, error) {
	switch d.kind {
	case DataBase58:
		out := base58.Decode(d.value)
		if len(out) == 0 && d.value != "" {
			return nil, &errs.KeyError{Encoding: errs.EncodingBase58, Err: errInvalidBase58}
		}

		return out, nil
	case DataHex:
		out, err := hex.DecodeString(d.value)
		if err != nil {
			return nil, &errs.KeyError{Encoding: errs.EncodingHex, Err: err}
		}

		return out, nil
	case DataMultibase:
		_, out, err := multibase.Decode(d.value)
		if err != nil {
			return nil, &errs.KeyError{Encoding: errs.EncodingMultibase, Err: err}
		}

		return out, nil
	case DataJWK:
		return nil, &errs.KeyError{Encoding: errs.EncodingJWK}
	default:
		return nil, fmt.Errorf("%w: no key material", errs.ErrInvalidKey)
	}
}

func (d MethodData) member() interface{} {
	if d.kind == DataJWK {
		return d.jwk
	}

	return d.value
}

// popMethodData extracts the single key material member from raw.
func popMethodData(raw jsonmap.Raw) (MethodData, error) {
	var (
		data  MethodData
		found string
	)

	for _, f := range dataFields {
		if !raw.Has(f.field) {
			continue
		}

		if found != "" {
			return MethodData{}, fmt.Errorf("%w: both `%s` and `%s` present", errs.ErrInvalidKey, found, f.field)
		}

		found = f.field

		if f.kind == DataJWK {
			var jwk jsonmap.Object
			if _, err := raw.Pop(f.field, &jwk); err != nil {
				return MethodData{}, err
			}

			data = MethodData{kind: DataJWK, jwk: jwk}

			continue
		}

		var value string
		if _, err := raw.Pop(f.field, &value); err != nil {
			return MethodData{}, err
		}

		data = MethodData{kind: f.kind, value: value}
	}

	return data, nil
}
