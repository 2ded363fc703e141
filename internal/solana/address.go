// Package solana holds the small amount of chain-specific logic the scorer
// needs: validating that a string is a plausible Solana address or token mint.
package solana

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Native mint, used as the quote side of most launch pools.
const WSOLMint = "So11111111111111111111111111111111111111112"

// ValidateAddress checks that addr is base58 and decodes to exactly 32 bytes.
// This accepts both wallet addresses (on-curve) and PDAs (off-curve).
func ValidateAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("empty address")
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode address %q: %w", addr, err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("address %q decodes to %d bytes, want 32", addr, len(decoded))
	}
	return nil
}

// IsValidAddress reports whether addr passes ValidateAddress.
func IsValidAddress(addr string) bool {
	return ValidateAddress(addr) == nil
}

// IsOnCurve reports whether addr is a valid ed25519 curve point, i.e. a
// keypair-backed account rather than a program derived address.
func IsOnCurve(addr string) bool {
	decoded, err := base58.Decode(addr)
	if err != nil || len(decoded) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
