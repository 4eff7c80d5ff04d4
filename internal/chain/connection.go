// Package chain wraps the Solana RPC surface the terminal core depends on.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Blockhash pairs a recent blockhash with the block height through which it
// remains valid for transaction inclusion.
type Blockhash struct {
	Hash                 solana.Hash
	LastValidBlockHeight uint64
}

// Confirmation is the observed terminal state of a submitted transaction.
// ExecErr carries the on-chain execution error, nil when the transaction
// succeeded.
type Confirmation struct {
	ExecErr error
}

// Connection is the only chain surface the balance resolver and settler use.
// Implementations are long-lived, bound to one endpoint, and stateless with
// respect to individual calls.
type Connection interface {
	NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenAccountBalance(ctx context.Context, account solana.PublicKey) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	LatestBlockhash(ctx context.Context) (Blockhash, error)
	Confirm(ctx context.Context, sig solana.Signature, hash Blockhash) (Confirmation, error)
}

// RPCConnection implements Connection over a JSON-RPC endpoint.
type RPCConnection struct {
	RPC          *rpc.Client
	Commit       rpc.CommitmentType
	PollInterval time.Duration
}

// New dials nothing; it just binds a client to the endpoint with the given
// commitment level (processed|confirmed|finalized, defaulting to confirmed).
func New(rpcURL, commit string) *RPCConnection {
	c := rpc.CommitmentConfirmed
	switch commit {
	case "processed":
		c = rpc.CommitmentProcessed
	case "finalized":
		c = rpc.CommitmentFinalized
	}
	return &RPCConnection{
		RPC:          rpc.New(rpcURL),
		Commit:       c,
		PollInterval: 500 * time.Millisecond,
	}
}

func (c *RPCConnection) NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	out, err := c.RPC.GetBalance(ctx, owner, c.Commit)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

func (c *RPCConnection) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (*big.Int, error) {
	out, err := c.RPC.GetTokenAccountBalance(ctx, account, c.Commit)
	if err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, fmt.Errorf("empty token balance response")
	}
	amount, ok := new(big.Int).SetString(out.Value.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable token amount %q", out.Value.Amount)
	}
	return amount, nil
}

func (c *RPCConnection) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	return c.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.Commit,
	})
}

func (c *RPCConnection) LatestBlockhash(ctx context.Context) (Blockhash, error) {
	out, err := c.RPC.GetLatestBlockhash(ctx, c.Commit)
	if err != nil {
		return Blockhash{}, err
	}
	return Blockhash{
		Hash:                 out.Value.Blockhash,
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
	}, nil
}

// Confirm polls the signature status until the transaction reaches at least
// confirmed commitment, or the blockhash's validity window closes. An expired
// window means confirmation could not be observed; the transaction may still
// have landed.
func (c *RPCConnection) Confirm(ctx context.Context, sig solana.Signature, hash Blockhash) (Confirmation, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-ticker.C:
		}

		out, err := c.RPC.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return Confirmation{}, err
		}
		if len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				st.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				var execErr error
				if st.Err != nil {
					execErr = fmt.Errorf("%v", st.Err)
				}
				return Confirmation{ExecErr: execErr}, nil
			}
		}

		height, err := c.RPC.GetBlockHeight(ctx, c.Commit)
		if err != nil {
			return Confirmation{}, err
		}
		if height > hash.LastValidBlockHeight {
			return Confirmation{}, fmt.Errorf("blockhash expired at height %d before %s was observed", height, sig)
		}
	}
}
