package balance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		addr string
		want Class
	}{
		{"empty", "", ClassInvalid},
		{"whitespace-ish", " ", ClassInvalid},
		{"wrapped sol mint", "So11111111111111111111111111111111111111112", ClassBase58},
		{"usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", ClassBase58},
		{"hex prefixed", "0xdeadbeef", ClassHex},
		{"hex upper prefix", "0XDEADBEEF", ClassHex},
		{"bare hex", "deadbeef", ClassHex},
		{"move coin type", "0x1::aptos_coin::AptosCoin", ClassModule},
		{"module wins over hex", "0xabc::Coin", ClassModule},
		{"module without hex", "framework::Coin", ClassModule},
		{"short hex digits", "abc", ClassHex},
		{"short non-hex", "xyz", ClassInvalid},
		{"hex letters past base58 length", strings.Repeat("A", 45), ClassHex},
		{"non-hex past base58 length", strings.Repeat("Z", 45), ClassInvalid},
		{"zero char breaks base58", "0o" + strings.Repeat("A", 30), ClassInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.addr), "addr %q", tc.addr)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	// Same input, same class, independent of any prior calls.
	addr := "So11111111111111111111111111111111111111112"
	first := Classify(addr)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Classify(addr))
	}
}
