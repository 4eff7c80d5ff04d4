// Package chaintest provides a canned Connection with call counters for
// resolver and settler tests.
package chaintest

import (
	"context"
	"math/big"

	solana "github.com/gagliardetto/solana-go"

	"github.com/summercongcong/mini-trading-terminal/internal/chain"
)

// Stub implements chain.Connection from fixed values. Zero value answers
// every call with zeros and no errors.
type Stub struct {
	NativeLamports uint64
	NativeErr      error
	TokenAmount    *big.Int
	TokenErr       error
	SendSig        solana.Signature
	SendErr        error
	Hash           chain.Blockhash
	HashErr        error
	Conf           chain.Confirmation
	ConfErr        error

	NativeCalls  int
	TokenCalls   int
	SendCalls    int
	HashCalls    int
	ConfirmCalls int
}

var _ chain.Connection = (*Stub)(nil)

func (s *Stub) NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	s.NativeCalls++
	return s.NativeLamports, s.NativeErr
}

func (s *Stub) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (*big.Int, error) {
	s.TokenCalls++
	if s.TokenErr != nil {
		return nil, s.TokenErr
	}
	if s.TokenAmount == nil {
		return new(big.Int), nil
	}
	return s.TokenAmount, nil
}

func (s *Stub) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	s.SendCalls++
	return s.SendSig, s.SendErr
}

func (s *Stub) LatestBlockhash(ctx context.Context) (chain.Blockhash, error) {
	s.HashCalls++
	return s.Hash, s.HashErr
}

func (s *Stub) Confirm(ctx context.Context, sig solana.Signature, hash chain.Blockhash) (chain.Confirmation, error) {
	s.ConfirmCalls++
	return s.Conf, s.ConfErr
}
