package did

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-diddoc/common/errs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		method   string
		id       string
		path     string
		query    string
		fragment string
	}{
		{name: "bare", input: "did:example:123", method: "example", id: "123"},
		{name: "fragment", input: "did:example:123#key-1", method: "example", id: "123", fragment: "key-1"},
		{name: "nested id", input: "did:web:example.com:user:alice", method: "web", id: "example.com:user:alice"},
		{name: "percent encoded", input: "did:web:localhost%3A8080", method: "web", id: "localhost%3A8080"},
		{
			name:     "full url",
			input:    "did:example:123/path/to?service=agent#frag",
			method:   "example",
			id:       "123",
			path:     "/path/to",
			query:    "service=agent",
			fragment: "frag",
		},
		{
			name:   "ethr address",
			input:  "did:nda:0x8b3b1dee8e00cb95f8b2a1d1a9a7cb8fe7d490ce",
			method: "nda",
			id:     "0x8b3b1dee8e00cb95f8b2a1d1a9a7cb8fe7d490ce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.method, d.Method())
			assert.Equal(t, tt.id, d.MethodID())
			assert.Equal(t, tt.path, d.Path())
			assert.Equal(t, tt.query, d.Query())
			assert.Equal(t, tt.fragment, d.Fragment())
			assert.Equal(t, tt.fragment != "", d.HasFragment())
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no scheme", input: "example:123"},
		{name: "fragment only", input: "#key-1"},
		{name: "no id", input: "did:example"},
		{name: "empty id", input: "did:example:"},
		{name: "upper method", input: "did:Example:123"},
		{name: "trailing colon", input: "did:example:123:"},
		{name: "bad char", input: "did:example:12 3"},
		{name: "bad percent", input: "did:example:12%G3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidIdentifier))
		})
	}
}

func TestJoin(t *testing.T) {
	base := MustParse("did:example:123")

	joined, err := base.Join("#key-2")
	require.NoError(t, err)
	assert.Equal(t, "did:example:123#key-2", joined.String())

	abs, err := base.Join("did:other:456#k")
	require.NoError(t, err)
	assert.Equal(t, "did:other:456#k", abs.String())

	_, err = DID{}.Join("#key")
	assert.Error(t, err)

	_, err = base.Join("key")
	assert.Error(t, err)
}

func TestEqualAndFragment(t *testing.T) {
	a := MustParse("did:example:123#key-1")
	b := MustParse("did:example:123").WithFragment("#key-1")

	assert.True(t, a.Equal(b))
	assert.True(t, a.WithoutFragment().Equal(MustParse("did:example:123")))
	assert.Equal(t, "did:example:123", a.Base().String())
	assert.True(t, DID{}.IsZero())
	assert.Equal(t, "", DID{}.String())
}

func TestJSON(t *testing.T) {
	type holder struct {
		ID DID `json:"id"`
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"id":"did:example:123#a"}`), &h))
	assert.Equal(t, "a", h.ID.Fragment())

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"did:example:123#a"}`, string(raw))

	assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &h))
}
