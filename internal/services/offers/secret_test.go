package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretLengthAndUniqueness(t *testing.T) {
	a, err := generateSecret()
	require.NoError(t, err)
	assert.Len(t, a, secretLength)

	b, err := generateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSecretsMatch(t *testing.T) {
	a := []byte("same-secret-value")
	b := []byte("same-secret-value")
	c := []byte("different-value!!")

	assert.True(t, secretsMatch(a, b))
	assert.False(t, secretsMatch(a, c))
	assert.False(t, secretsMatch(a, []byte("short")))
}
