package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode(t *testing.T) {
	code, err := GenerateConfirmationCode(ConfirmationCodeLength)
	require.NoError(t, err)
	assert.Len(t, code, 10)
	for i := 0; i < len(code); i++ {
		assert.True(t, code[i] >= '0' && code[i] <= '9', "unexpected character %q", code[i])
	}

	_, err = GenerateConfirmationCode(0)
	assert.Error(t, err)
	_, err = GenerateConfirmationCode(-3)
	assert.Error(t, err)
}

func TestIsValidConfirmationCodeFormat(t *testing.T) {
	assert.True(t, IsValidConfirmationCodeFormat("0123456789"))
	assert.True(t, IsValidConfirmationCodeFormat(" 0123456789 "), "surrounding whitespace is trimmed")
	assert.False(t, IsValidConfirmationCodeFormat("012345678"))
	assert.False(t, IsValidConfirmationCodeFormat("01234567890"))
	assert.False(t, IsValidConfirmationCodeFormat("01234A6789"))
	assert.False(t, IsValidConfirmationCodeFormat(""))
}
