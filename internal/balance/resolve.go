// Package balance resolves native and token balances for display, degrading
// every failure to zero so the rest of the terminal keeps rendering.
package balance

import (
	"context"
	"math/big"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/summercongcong/mini-trading-terminal/internal/chain"
	"github.com/summercongcong/mini-trading-terminal/internal/metrics"
)

// Amount is a balance in atomic units plus its display-boundary decimal
// conversion. Atomic is never a float; Human is derived from it exactly once
// using the asset's decimal-places divisor.
type Amount struct {
	Atomic *big.Int
	Human  decimal.Decimal
}

// Balances is the pair a resolution produces.
type Balances struct {
	Native Amount
	Token  Amount
}

func zeroAmount() Amount {
	return Amount{Atomic: new(big.Int), Human: decimal.Zero}
}

func amountFrom(atomic *big.Int, decimals int) Amount {
	return Amount{
		Atomic: atomic,
		Human:  decimal.NewFromBigInt(atomic, -int32(decimals)),
	}
}

// Resolver recomputes balances from scratch on every call; it holds no cache
// and no mutable state beyond its collaborators.
type Resolver struct {
	conn chain.Connection
	log  zerolog.Logger
}

func NewResolver(conn chain.Connection, log zerolog.Logger) *Resolver {
	return &Resolver{conn: conn, log: log}
}

// Resolve returns the wallet's native balance and its balance of the given
// token mint. It never returns an error: foreign-chain or malformed addresses,
// RPC failures, and uninitialized token accounts all degrade to zero with a
// logged diagnostic. Only base58 token addresses ever reach the chain.
func (r *Resolver) Resolve(ctx context.Context, wallet, token string, tokenDecimals, nativeDecimals int) Balances {
	out := Balances{Native: zeroAmount(), Token: zeroAmount()}

	owner, ok := r.ownerKey(wallet)
	if !ok {
		return out
	}

	if lamports, err := r.conn.NativeBalance(ctx, owner); err != nil {
		metrics.BalanceQueriesTotal.WithLabelValues("native_rpc_error").Inc()
		r.log.Warn().Err(err).Str("wallet", wallet).Msg("native balance query failed")
	} else {
		out.Native = amountFrom(new(big.Int).SetUint64(lamports), nativeDecimals)
		metrics.BalanceQueriesTotal.WithLabelValues("native_ok").Inc()
	}

	switch Classify(token) {
	case ClassModule, ClassHex:
		// Foreign-chain mint: deriving a token account from it would either
		// throw or silently compute a meaningless address. Skip the call.
		metrics.BalanceQueriesTotal.WithLabelValues("foreign_chain").Inc()
		r.log.Debug().Str("token", token).Stringer("class", Classify(token)).Msg("token on unsupported chain, balance shown as zero")
		return out
	case ClassInvalid:
		metrics.BalanceQueriesTotal.WithLabelValues("malformed").Inc()
		r.log.Warn().Str("token", token).Msg("malformed token address, balance shown as zero")
		return out
	}

	mint, err := solana.PublicKeyFromBase58(token)
	if err != nil {
		metrics.BalanceQueriesTotal.WithLabelValues("malformed").Inc()
		r.log.Warn().Err(err).Str("token", token).Msg("token address failed base58 parse, balance shown as zero")
		return out
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		metrics.BalanceQueriesTotal.WithLabelValues("derivation_error").Inc()
		r.log.Warn().Err(err).Str("token", token).Msg("token account derivation failed, balance shown as zero")
		return out
	}

	atomic, err := r.conn.TokenAccountBalance(ctx, ata)
	if err != nil {
		// The account commonly does not exist yet: the wallet simply never
		// held this token. That is a zero balance, not an error.
		metrics.BalanceQueriesTotal.WithLabelValues("token_absent_or_error").Inc()
		r.log.Debug().Err(err).Str("token", token).Str("account", ata.String()).Msg("token account not readable, balance shown as zero")
		return out
	}

	out.Token = amountFrom(atomic, tokenDecimals)
	metrics.BalanceQueriesTotal.WithLabelValues("token_ok").Inc()
	return out
}

// ownerKey validates the wallet address before any chain call. Malformed
// wallets log distinctly from foreign-chain tokens.
func (r *Resolver) ownerKey(wallet string) (solana.PublicKey, bool) {
	if Classify(wallet) != ClassBase58 {
		metrics.BalanceQueriesTotal.WithLabelValues("malformed_wallet").Inc()
		r.log.Warn().Str("wallet", wallet).Msg("wallet address is not a base58 key, balances shown as zero")
		return solana.PublicKey{}, false
	}
	owner, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		metrics.BalanceQueriesTotal.WithLabelValues("malformed_wallet").Inc()
		r.log.Warn().Err(err).Str("wallet", wallet).Msg("wallet address failed base58 parse, balances shown as zero")
		return solana.PublicKey{}, false
	}
	return owner, true
}
