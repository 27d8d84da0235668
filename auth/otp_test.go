package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := generateCode()
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be digits only")
	}
}

func TestHashCode(t *testing.T) {
	assert.Equal(t, hashCode("123456"), hashCode("123456"))
	assert.NotEqual(t, hashCode("123456"), hashCode("123457"))
	assert.Len(t, hashCode("123456"), 64)
}
