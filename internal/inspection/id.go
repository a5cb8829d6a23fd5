package inspection

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 4

// NewID returns 8 random hex characters.
func NewID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("NewID(): %w", err)
	}
	return hex.EncodeToString(b), nil
}
