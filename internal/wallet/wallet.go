// Package wallet turns operator-supplied secret material into a usable signing key.
package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/mr-tron/base58"
)

// SecretEnvVar is the environment variable consulted by LoadFromEnv.
const SecretEnvVar = "TERMINAL_WALLET_SECRET"

// keyLen is the byte length of an ed25519 private key (seed + public half).
const keyLen = 64

// InvalidKeyMaterialError reports that no supported encoding produced a valid
// key. It carries only diagnostic scraps of the secret, never the secret
// itself and never any decoded bytes.
type InvalidKeyMaterialError struct {
	Base58Err error  // failure detail from the first (base58) attempt
	Length    int    // length of the cleaned secret
	Prefix    string // first characters of the secret, capped at 20
}

func (e *InvalidKeyMaterialError) Error() string {
	return fmt.Sprintf("invalid key material: no encoding yielded a %d-byte key (base58: %v, len=%d, prefix=%q)",
		keyLen, e.Base58Err, e.Length, e.Prefix)
}

func (e *InvalidKeyMaterialError) Unwrap() error { return e.Base58Err }

// attempt is one decoding strategy in the ordered fallback chain.
type attempt struct {
	format string
	decode func(string) ([]byte, error)
}

// Wallet tools export keys as base58 strings, JSON byte arrays, or hex;
// order is fixed so a coincidental multi-format match is deterministic.
var attempts = []attempt{
	{"base58", decodeBase58},
	{"json-array", decodeJSONArray},
	{"hex", decodeHex},
}

// DecodeSecret tries base58, then a JSON integer array, then hex, returning
// the first interpretation that yields exactly 64 key bytes.
func DecodeSecret(secret string) (solana.PrivateKey, error) {
	cleaned := clean(secret)

	var base58Err error
	for _, a := range attempts {
		raw, err := a.decode(cleaned)
		if err != nil {
			if a.format == "base58" {
				base58Err = err
			}
			continue
		}
		if len(raw) != keyLen {
			if a.format == "base58" {
				base58Err = fmt.Errorf("decoded to %d bytes, want %d", len(raw), keyLen)
			}
			continue
		}
		return solana.PrivateKey(raw), nil
	}

	return nil, &InvalidKeyMaterialError{
		Base58Err: base58Err,
		Length:    len(cleaned),
		Prefix:    prefix(cleaned, 20),
	}
}

// LoadFromEnv reads the operator secret from the environment. A missing
// variable is a valid state (trading disabled), reported as ok=false rather
// than an error; a present but undecodable secret is an error.
func LoadFromEnv() (solana.PrivateKey, bool, error) {
	_ = godotenv.Load() // best-effort
	secret := os.Getenv(SecretEnvVar)
	if secret == "" {
		return nil, false, nil
	}
	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// clean strips whitespace, newlines, and one layer of surrounding quotes.
func clean(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, `'`, "`"} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			s = s[1 : len(s)-1]
			break
		}
	}
	return strings.Join(strings.Fields(s), "")
}

func decodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty secret")
	}
	return base58.Decode(s)
}

func decodeJSONArray(s string) ([]byte, error) {
	var nums []int
	if err := json.Unmarshal([]byte(s), &nums); err != nil {
		return nil, err
	}
	if len(nums) != keyLen {
		return nil, fmt.Errorf("array has %d elements, want %d", len(nums), keyLen)
	}
	raw := make([]byte, keyLen)
	for i, n := range nums {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("element %d out of byte range: %d", i, n)
		}
		raw[i] = byte(n)
	}
	return raw, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	for _, r := range s {
		if !isHexDigit(r) {
			return nil, fmt.Errorf("non-hex character %q", r)
		}
	}
	return hex.DecodeString(s)
}

func isHexDigit(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
