package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := GenerateSecureRandomString(8)
	require.NoError(t, err)
	assert.Len(t, s, 16, "hex encoding doubles the byte length")
	assert.Regexp(t, "^[0-9a-f]+$", s)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestGenerateSecureRandomDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		digits, err := GenerateSecureRandomDigits(6)
		require.NoError(t, err)
		assert.Regexp(t, "^[0-9]{6}$", digits)
	}

	_, err := GenerateSecureRandomDigits(0)
	assert.Error(t, err)

	_, err = GenerateSecureRandomDigits(19)
	assert.Error(t, err)
}
