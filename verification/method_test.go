package verification

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/common/jsonmap"
	"github.com/pilacorp/go-diddoc/did"
)

var (
	controller = did.MustParse("did:example:1234")
	keyBytes   = []byte{0x01, 0x02, 0x03, 0xfe}
)

func testMethod(t *testing.T, fragment string) *Method {
	t.Helper()

	m, err := NewMethod(MethodConfig{
		ID:         controller.WithFragment(fragment),
		Controller: controller,
		Type:       Ed25519VerificationKey2018,
		Data:       NewBase58FromBytes(keyBytes),
	})
	require.NoError(t, err)

	return m
}

func TestNewMethodFieldOrder(t *testing.T) {
	id := controller.WithFragment("key-1")
	data := NewHex("0102")

	tests := []struct {
		name  string
		cfg   MethodConfig
		field string
	}{
		{name: "nothing", cfg: MethodConfig{}, field: "id"},
		{name: "id only", cfg: MethodConfig{ID: id}, field: "controller"},
		{name: "missing type", cfg: MethodConfig{ID: id, Controller: controller, Data: data}, field: "key_type"},
		{name: "missing data", cfg: MethodConfig{ID: id, Controller: controller, Type: JSONWebKey2020}, field: "key_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMethod(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidBuilder))

			var builderErr *errs.BuilderError
			require.True(t, errors.As(err, &builderErr))
			assert.Equal(t, "Method", builderErr.Name)
			assert.Equal(t, tt.field, builderErr.Field)
		})
	}
}

func TestTryDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     MethodData
		expected []byte
		encoding string
	}{
		{name: "base58", data: NewBase58(base58.Encode(keyBytes)), expected: keyBytes},
		{name: "hex", data: NewHex("010203fe"), expected: keyBytes},
		{name: "multibase", data: NewMultibase("f010203fe"), expected: keyBytes},
		{name: "bad base58", data: NewBase58("0OIl"), encoding: errs.EncodingBase58},
		{name: "bad hex", data: NewHex("zz"), encoding: errs.EncodingHex},
		{name: "bad multibase", data: NewMultibase("?abc"), encoding: errs.EncodingMultibase},
		{name: "jwk", data: NewJWK(jsonmap.Object{"kty": "OKP"}), encoding: errs.EncodingJWK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.data.TryDecode()
			if tt.encoding == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, out)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidKey))

			var keyErr *errs.KeyError
			require.True(t, errors.As(err, &keyErr))
			assert.Equal(t, tt.encoding, keyErr.Encoding)
		})
	}
}

func TestMethodJSON(t *testing.T) {
	m := testMethod(t, "key-1")
	m.SetProperty("foo", "bar")

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "did:example:1234#key-1",
		"controller": "did:example:1234",
		"type": "Ed25519VerificationKey2018",
		"publicKeyBase58": "`+base58.Encode(keyBytes)+`",
		"foo": "bar"
	}`, string(raw))

	var decoded Method
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, m.ID(), decoded.ID())
	assert.Equal(t, m.Data(), decoded.Data())
	assert.Equal(t, jsonmap.Object{"foo": "bar"}, decoded.Properties())
}

func TestMethodJSONInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{
			name:  "missing controller",
			input: `{"id":"did:example:1#a","type":"JsonWebKey2020","publicKeyHex":"00"}`,
			err:   errs.ErrInvalidBuilder,
		},
		{
			name:  "unknown type",
			input: `{"id":"did:example:1#a","controller":"did:example:1","type":"Foo","publicKeyHex":"00"}`,
			err:   errs.ErrUnknownMethodType,
		},
		{
			name:  "two key fields",
			input: `{"id":"did:example:1#a","controller":"did:example:1","type":"JsonWebKey2020","publicKeyHex":"00","publicKeyBase58":"1"}`,
			err:   errs.ErrInvalidKey,
		},
		{
			name:  "bad id",
			input: `{"id":"nope","controller":"did:example:1","type":"JsonWebKey2020","publicKeyHex":"00"}`,
			err:   errs.ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Method
			err := json.Unmarshal([]byte(tt.input), &m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())
		})
	}
}

func TestMethodFragment(t *testing.T) {
	m := testMethod(t, "key-1")

	fragment, err := m.Fragment()
	require.NoError(t, err)
	assert.Equal(t, "#key-1", fragment)

	bare, err := NewMethod(MethodConfig{
		ID:         controller,
		Controller: controller,
		Type:       Ed25519VerificationKey2018,
		Data:       NewHex("00"),
	})
	require.NoError(t, err)

	_, err = bare.Fragment()
	assert.True(t, errors.Is(err, errs.ErrMissingFragment))
}

func TestMethodRef(t *testing.T) {
	m := testMethod(t, "key-1")
	ref := controller.WithFragment("key-2")

	embedded := Embed(m)
	assert.True(t, embedded.IsEmbedded())
	assert.False(t, embedded.IsReferenced())
	assert.Equal(t, m.ID(), embedded.ID())

	got, ok := embedded.Embedded()
	assert.True(t, ok)
	assert.Same(t, m, got)

	_, ok = embedded.Referenced()
	assert.False(t, ok)

	ctrl, ok := embedded.Controller()
	assert.True(t, ok)
	assert.Equal(t, controller, ctrl)

	referenced := Refer(ref)
	assert.True(t, referenced.IsReferenced())
	assert.Equal(t, ref, referenced.ID())

	_, ok = referenced.Controller()
	assert.False(t, ok)

	_, ok = referenced.Embedded()
	assert.False(t, ok)

	target, ok := referenced.Referenced()
	assert.True(t, ok)
	assert.Equal(t, ref, target)
}

func TestMethodRefJSON(t *testing.T) {
	refs := []MethodRef{
		Refer(controller.WithFragment("key-2")),
		Embed(testMethod(t, "key-1")),
	}

	raw, err := json.Marshal(refs)
	require.NoError(t, err)

	var generic []interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "did:example:1234#key-2", generic[0])
	assert.IsType(t, map[string]interface{}{}, generic[1])

	var decoded []MethodRef
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].IsReferenced())
	assert.True(t, decoded[1].IsEmbedded())
	assert.Equal(t, "did:example:1234#key-1", decoded[1].ID().String())
}

func TestMethodScope(t *testing.T) {
	for _, scope := range Scopes {
		parsed, err := ParseMethodScope(scope.String())
		require.NoError(t, err)
		assert.Equal(t, scope, parsed)
	}

	var zero MethodScope
	assert.Equal(t, VerificationMethod, zero)

	_, err := ParseMethodScope("AssertionMethod")
	assert.True(t, errors.Is(err, errs.ErrUnknownMethodScope))

	_, err = ParseMethodScope("")
	assert.True(t, errors.Is(err, errs.ErrUnknownMethodScope))
}

func TestMethodType(t *testing.T) {
	parsed, err := ParseMethodType("EcdsaSecp256k1VerificationKey2019")
	require.NoError(t, err)
	assert.Equal(t, EcdsaSecp256k1VerificationKey2019, parsed)

	_, err = ParseMethodType("RsaVerificationKey2018")
	assert.True(t, errors.Is(err, errs.ErrUnknownMethodType))

	_, err = MethodType(0).MarshalText()
	assert.Error(t, err)
}

func TestMethodIndexMatches(t *testing.T) {
	id := did.MustParse("did:example:1234#key-1")
	bare := did.MustParse("did:example:1234")

	tests := []struct {
		name     string
		index    MethodIndex
		pos      int
		id       did.DID
		expected bool
	}{
		{name: "position", index: Index(2), pos: 2, id: id, expected: true},
		{name: "wrong position", index: Index(1), pos: 2, id: id, expected: false},
		{name: "position ignores ident", index: Index(0), pos: 1, id: id, expected: false},
		{name: "bare fragment", index: Ident("key-1"), pos: 5, id: id, expected: true},
		{name: "hash fragment", index: Ident("#key-1"), pos: 5, id: id, expected: true},
		{name: "qualified", index: Ident("did:example:1234#key-1"), pos: 5, id: id, expected: true},
		{name: "qualified other did", index: Ident("did:other:9#key-1"), pos: 5, id: id, expected: true},
		{name: "other fragment", index: Ident("#key-2"), pos: 5, id: id, expected: false},
		{name: "candidate without fragment", index: Ident(""), pos: 0, id: bare, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.index.Matches(tt.pos, tt.id))
		})
	}
}

func TestMethodQuery(t *testing.T) {
	q := Query("#key-1")
	assert.Equal(t, VerificationMethod, q.Scope)
	assert.True(t, q.Index.IsIdent())

	scoped := q.In(Authentication)
	assert.Equal(t, Authentication, scoped.Scope)
	assert.Equal(t, VerificationMethod, q.Scope)

	at := QueryAt(3).In(KeyAgreement)
	assert.False(t, at.Index.IsIdent())
	assert.Equal(t, "3 in keyAgreement", at.String())
}
