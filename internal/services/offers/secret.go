package offers

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// secretLength matches the original's os.urandom(18).
const secretLength = 18

// generateSecret returns a fresh random secret for a new offer. Proof
// secrets come from the payments package's generateProofSecret.
func generateSecret() ([]byte, error) {
	b := make([]byte, secretLength)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("offers: generate secret: %w", err)
	}

	return b, nil
}

// secretsMatch compares two secrets in constant time so a timing oracle
// can't distinguish "wrong secret" from "offer not found" (§4.1).
func secretsMatch(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare(a, b) == 1
}
