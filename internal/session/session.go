// Package session holds the key and connection state for one trading session
// as an explicit object instead of process-wide globals.
package session

import (
	solana "github.com/gagliardetto/solana-go"

	"github.com/summercongcong/mini-trading-terminal/internal/chain"
)

// Session binds a signing key to a chain connection for the lifetime of a
// trading session. Both fields are read-only after construction and may be
// reused by sequential operations. Either may be absent: an unconfigured
// wallet or endpoint is a valid steady state with trading disabled.
type Session struct {
	Key  solana.PrivateKey
	Conn chain.Connection
}

// New builds a session. key may be nil, conn may be nil.
func New(key solana.PrivateKey, conn chain.Connection) *Session {
	return &Session{Key: key, Conn: conn}
}

// Ready reports whether both signing credentials and an endpoint are present,
// i.e. whether settlement is possible at all.
func (s *Session) Ready() bool {
	return s != nil && s.Key != nil && s.Conn != nil
}

// PublicKey returns the session's wallet address, or the zero key when no
// credentials are configured.
func (s *Session) PublicKey() solana.PublicKey {
	if s == nil || s.Key == nil {
		return solana.PublicKey{}
	}
	return s.Key.PublicKey()
}
