package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProofSecretLengthAndUniqueness(t *testing.T) {
	a, err := generateProofSecret()
	require.NoError(t, err)
	assert.Len(t, a, secretLength)

	b, err := generateProofSecret()
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

func TestDebtorAcceptedAndRouteMatches(t *testing.T) {
	debtorIDs := []int64{10, 20}
	debtorAmounts := []int64{100, 0}

	assert.True(t, debtorAccepted(debtorIDs, 10))
	assert.False(t, debtorAccepted(debtorIDs, 99))

	assert.True(t, routeMatches(debtorIDs, debtorAmounts, 10, 100))
	assert.False(t, routeMatches(debtorIDs, debtorAmounts, 10, 50))
	// A route amount of zero (or absent) matches only an amount that
	// sanitizes to zero, i.e. one that is itself <= 0.
	assert.True(t, routeMatches(debtorIDs, debtorAmounts, 20, 0))
	assert.False(t, routeMatches(debtorIDs, debtorAmounts, 20, 5))
}
