package balance

import "strings"

// Class is the lexical format class of a chain address. Classification is
// pure string shape; the chain an address came from never influences it.
type Class int

const (
	// ClassInvalid covers empty or malformed addresses.
	ClassInvalid Class = iota
	// ClassModule is the chain-qualified "module::type" form.
	ClassModule
	// ClassHex is a 0x-prefixed or bare hex-digit address.
	ClassHex
	// ClassBase58 is a 32-44 character base58 address, the only class this
	// terminal settles against.
	ClassBase58
)

func (c Class) String() string {
	switch c {
	case ClassModule:
		return "module"
	case ClassHex:
		return "hex"
	case ClassBase58:
		return "base58"
	default:
		return "invalid"
	}
}

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Classify determines an address's format class with no I/O. Priority order:
// module-qualified, then hex-prefixed, then base58, then bare hex digits.
func Classify(addr string) Class {
	if addr == "" {
		return ClassInvalid
	}
	if strings.Contains(addr, "::") {
		return ClassModule
	}
	if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
		return ClassHex
	}
	if len(addr) >= 32 && len(addr) <= 44 && isBase58(addr) {
		return ClassBase58
	}
	if isHex(addr) {
		return ClassHex
	}
	return ClassInvalid
}

func isBase58(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for _, r := range s {
		ok := r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
		if !ok {
			return false
		}
	}
	return true
}
