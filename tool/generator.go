package tool

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GeneratePin returns a random 4-digit PIN in the range 1000..9999.
func GeneratePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}
