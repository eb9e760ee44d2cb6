package keygen

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// KeyLength is the number of hex characters in a generated key.
const KeyLength = 7

// Generator produces short opaque keys for stored values by hashing the
// value together with a random nonce. Uniqueness is best effort, the
// store overwrites on key collision and callers that care should check
// for an existing key first.
type Generator struct {
	nonceFn func() string
}

// New returns a Generator with a random UUID nonce per key.
func New() *Generator {
	return &Generator{
		nonceFn: uuid.NewString,
	}
}

// NewWithNonce returns a Generator with a custom nonce source,
// mostly for deterministic keys in tests.
func NewWithNonce(nonceFn func() string) *Generator {
	return &Generator{
		nonceFn: nonceFn,
	}
}

// NewKey generates a short key for the given value.
func (g *Generator) NewKey(value string) string {
	sum := sha256.Sum256([]byte(value + g.nonceFn()))
	return hex.EncodeToString(sum[:])[:KeyLength]
}
