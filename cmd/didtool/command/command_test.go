package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/suite/ecdsasecp256k1signature2019"
	"github.com/pilacorp/go-diddoc/suite/ed25519signature2018"
	"github.com/pilacorp/go-diddoc/suite/jsonwebsignature2020"
)

type keygenOutput struct {
	Type               string          `json:"type"`
	Secret             string          `json:"secret"`
	VerificationMethod json.RawMessage `json:"verificationMethod"`
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRoot()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func unsignedDocument(t *testing.T, suite string) (path, secret string) {
	t.Helper()

	out, err := run(t, "keygen", "--suite", suite, "--id", "did:example:123#key-1")
	require.NoError(t, err)

	var key keygenOutput
	require.NoError(t, json.Unmarshal([]byte(out), &key))
	require.NotEmpty(t, key.Secret)
	require.NotEmpty(t, key.VerificationMethod)

	doc := `{
		"id": "did:example:123",
		"verificationMethod": [` + string(key.VerificationMethod) + `],
		"assertionMethod": ["did:example:123#key-1"]
	}`

	return writeFile(t, t.TempDir(), "doc.json", doc), key.Secret
}

func TestSuites(t *testing.T) {
	assert.Equal(t, []string{
		ecdsasecp256k1signature2019.Name,
		ed25519signature2018.Name,
		jsonwebsignature2020.Name,
	}, Registry().Names())
}

func TestKeygen(t *testing.T) {
	tests := []struct {
		suite string
		typ   string
		field string
	}{
		{suite: ed25519signature2018.Name, typ: "Ed25519VerificationKey2018", field: "publicKeyBase58"},
		{suite: ecdsasecp256k1signature2019.Name, typ: "EcdsaSecp256k1VerificationKey2019", field: "publicKeyHex"},
		{suite: jsonwebsignature2020.Name, typ: "JwsVerificationKey2020", field: "publicKeyBase58"},
	}

	for _, tt := range tests {
		t.Run(tt.suite, func(t *testing.T) {
			out, err := run(t, "keygen", "--suite", tt.suite)
			require.NoError(t, err)

			var members map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(out), &members))
			assert.Equal(t, tt.typ, members["type"])
			assert.NotEmpty(t, members[tt.field])
			assert.NotContains(t, members, "verificationMethod")
		})
	}

	_, err := run(t, "keygen", "--suite", "Nope")
	assert.True(t, errors.Is(err, errs.ErrUnknownSuite))
}

func TestSignVerify(t *testing.T) {
	for _, suite := range []string{ed25519signature2018.Name, ecdsasecp256k1signature2019.Name, jsonwebsignature2020.Name} {
		t.Run(suite, func(t *testing.T) {
			path, secret := unsignedDocument(t, suite)

			signed, err := run(t, "sign", path, "--suite", suite, "--secret", secret,
				"--method", "did:example:123#key-1", "--created", "--nonce", "--validate")
			require.NoError(t, err)

			var members map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(signed), &members))
			require.Contains(t, members, "proof")

			signedPath := writeFile(t, t.TempDir(), "signed.json", signed)

			out, err := run(t, "verify", signedPath)
			require.NoError(t, err)
			assert.Contains(t, out, suite)

			members["created"] = json.RawMessage(`"2020-01-01T00:00:00Z"`)
			tampered, err := json.Marshal(members)
			require.NoError(t, err)

			_, err = run(t, "verify", writeFile(t, t.TempDir(), "tampered.json", string(tampered)))
			assert.True(t, errors.Is(err, errs.ErrInvalidSignature), err)
		})
	}
}

func TestVerifyUnsigned(t *testing.T) {
	path, _ := unsignedDocument(t, ed25519signature2018.Name)

	_, err := run(t, "verify", path)
	assert.True(t, errors.Is(err, errs.ErrSignatureNotFound))
}

func TestSignRejectsUnknownPurpose(t *testing.T) {
	path, secret := unsignedDocument(t, ed25519signature2018.Name)

	_, err := run(t, "sign", path, "--secret", secret, "--method", "did:example:123#key-1", "--purpose", "bogus")
	assert.True(t, errors.Is(err, errs.ErrUnknownMethodScope))
}

func TestResolve(t *testing.T) {
	path, _ := unsignedDocument(t, ed25519signature2018.Name)

	tests := []struct {
		name  string
		args  []string
		index int
		scope string
		err   error
	}{
		{name: "by fragment", args: []string{"key-1"}, scope: "verificationMethod"},
		{name: "by did url", args: []string{"did:example:123#key-1"}, scope: "verificationMethod"},
		{name: "by position", args: []string{"0"}, scope: "verificationMethod"},
		{name: "through relationship", args: []string{"key-1", "--scope", "assertionMethod"}, scope: "verificationMethod"},
		{name: "missing", args: []string{"key-2"}, err: errs.ErrVerificationMethodNotFound},
		{name: "bad scope", args: []string{"key-1", "--scope", "nope"}, err: errs.ErrUnknownMethodScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"resolve", path}, tt.args...)...)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), err)
				return
			}

			require.NoError(t, err)

			var got resolved
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.index, got.Index)
			assert.Equal(t, tt.scope, got.Scope)
			assert.Equal(t, "did:example:123#key-1", got.Method.ID().String())
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "keygen", "--log-level", "loud")
	assert.Error(t, err)
}
