// Package redact derives log-safe representations of card data.
package redact

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const fingerprintKey = "dwaplatform-card-fingerprint-v1"

// Fingerprint returns a stable 16-hex-char identifier for a card number so
// log lines about the same card can be correlated without exposing it.
func Fingerprint(cardNumber string) string {
	h, err := blake2b.New256([]byte(fingerprintKey))
	if err != nil {
		// Only fails for keys longer than 64 bytes.
		panic(err) //coverage:ignore
	}
	h.Write([]byte(cardNumber))
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// MaskPAN keeps the first six and last four digits of a card number and
// replaces the rest with '*'. Numbers too short to keep both ends are fully masked.
func MaskPAN(cardNumber string) string {
	n := len(cardNumber)
	if n <= 10 {
		return stars(n)
	}
	return cardNumber[:6] + stars(n-10) + cardNumber[n-4:]
}

func stars(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '*'
	}
	return string(b)
}
