package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// FormatTicketID renders a ticket identifier such as EVT-2025-001.
// Sequences are zero-padded to 3 digits and keep growing past 999.
func FormatTicketID(year int, seq int64) string {
	return fmt.Sprintf("EVT-%d-%03d", year, seq)
}

// GenerateResetCode returns a uniformly random 6-digit code in
// [100000, 999999], cryptographically random.
func GenerateResetCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}
