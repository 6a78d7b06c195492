package payments

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// secretLength matches the original's os.urandom(18).
const secretLength = 18

// generateProofSecret returns a fresh random secret for a payment
// proof, minted by the coordinator itself at order-creation time — the
// payer never chooses or sees it until the proof is issued.
func generateProofSecret() ([]byte, error) {
	b := make([]byte, secretLength)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("payments: generate proof secret: %w", err)
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
