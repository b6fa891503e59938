package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderError(t *testing.T) {
	err := Missing("Method", "controller")

	assert.True(t, errors.Is(err, ErrInvalidBuilder))
	assert.False(t, errors.Is(err, ErrInvalidKey))
	assert.Equal(t, "invalid builder(Method): missing `controller`", err.Error())

	var builderErr *BuilderError
	assert.True(t, errors.As(fmt.Errorf("failed to build: %w", err), &builderErr))
	assert.Equal(t, "controller", builderErr.Field)
}

func TestKeyError(t *testing.T) {
	inner := errors.New("odd length")
	err := &KeyError{Encoding: EncodingHex, Err: inner}

	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, "invalid key: hex: odd length", err.Error())

	jwkErr := &KeyError{Encoding: EncodingJWK}
	assert.Equal(t, "invalid key: jwk", jwkErr.Error())
	assert.Nil(t, jwkErr.Unwrap())
}
