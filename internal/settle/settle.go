// Package settle carries a pre-built transaction through signing, submission,
// and confirmation against the chain.
package settle

import (
	"context"
	"errors"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/summercongcong/mini-trading-terminal/internal/chain"
	"github.com/summercongcong/mini-trading-terminal/internal/metrics"
)

// Stage names one of the three sequential settlement phases. Stages never
// overlap and never restart within an attempt.
type Stage string

const (
	StageSign    Stage = "sign"
	StageSubmit  Stage = "submit"
	StageConfirm Stage = "confirm"
)

// ErrWalletNotInitialized is returned when signing credentials or the RPC
// connection were never configured. It is an expected steady state, not a
// fault: callers hide trading affordances instead of surfacing it.
var ErrWalletNotInitialized = errors.New("wallet not initialized")

// StageError marks which settlement stage failed. The distinction matters to
// the operator: resubmission is safe after a submit failure but not after a
// confirmation failure, which may have landed on-chain anyway.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("settlement %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Outcome is the terminal state of one settlement attempt, resolved exactly
// once and never retried automatically.
type Outcome struct {
	Signature solana.Signature
	Err       error
}

// Confirmed reports whether the attempt ended with an observed, successful
// on-chain execution.
func (o Outcome) Confirmed() bool { return o.Err == nil }

// RefreshDelay is how long the caller should wait after a confirmed outcome
// before its single balance refresh, letting ledger state reach read replicas.
const RefreshDelay = time.Second

// Settler signs and submits transactions for one session's keypair. It is
// safe for sequential reuse; callers gate concurrency (one attempt in flight
// per keypair) at the panel level.
type Settler struct {
	conn    chain.Connection
	key     solana.PrivateKey
	log     zerolog.Logger
	onStage func(Stage)
}

// NewSettler builds a settler. A nil onStage is allowed.
func NewSettler(conn chain.Connection, key solana.PrivateKey, log zerolog.Logger, onStage func(Stage)) *Settler {
	return &Settler{conn: conn, key: key, log: log, onStage: onStage}
}

func (s *Settler) stage(st Stage) {
	if s.onStage != nil {
		s.onStage(st)
	}
}

// Settle runs the sign, submit, confirm, evaluate sequence. Each stage's
// failure is terminal for the attempt. A transaction is signed at most once;
// once submitted it cannot be withdrawn.
func (s *Settler) Settle(ctx context.Context, unsigned *solana.Transaction) Outcome {
	if s.key == nil || s.conn == nil {
		return s.done(Outcome{Err: ErrWalletNotInitialized})
	}

	attempt := uuid.NewString()
	log := s.log.With().Str("attempt", attempt).Logger()

	s.stage(StageSign)
	if unsigned == nil {
		return s.done(Outcome{Err: &StageError{Stage: StageSign, Err: errors.New("nil transaction")}})
	}
	signer := s.key
	if _, err := unsigned.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(signer.PublicKey()) {
			return &signer
		}
		return nil
	}); err != nil {
		log.Error().Err(err).Msg("signing failed")
		return s.done(Outcome{Err: &StageError{Stage: StageSign, Err: err}})
	}

	s.stage(StageSubmit)
	sig, err := s.conn.SendTransaction(ctx, unsigned)
	if err != nil {
		log.Error().Err(err).Msg("submission failed")
		return s.done(Outcome{Err: &StageError{Stage: StageSubmit, Err: err}})
	}
	log = log.With().Str("sig", sig.String()).Logger()
	log.Info().Msg("transaction submitted")

	s.stage(StageConfirm)
	hash, err := s.conn.LatestBlockhash(ctx)
	if err != nil {
		log.Error().Err(err).Msg("blockhash fetch failed")
		return s.done(Outcome{Signature: sig, Err: &StageError{Stage: StageConfirm, Err: err}})
	}
	conf, err := s.conn.Confirm(ctx, sig, hash)
	if err != nil {
		// Not proof the transaction missed the ledger, only that we could
		// not observe it land. The operator must not blindly resubmit.
		log.Warn().Err(err).Msg("confirmation not observed")
		return s.done(Outcome{Signature: sig, Err: &StageError{Stage: StageConfirm, Err: err}})
	}

	if conf.ExecErr != nil {
		log.Warn().Err(conf.ExecErr).Msg("transaction landed with execution error")
		return s.done(Outcome{Signature: sig, Err: errors.New("Trade failed")})
	}

	log.Info().Msg("transaction confirmed")
	return s.done(Outcome{Signature: sig})
}

func (s *Settler) done(o Outcome) Outcome {
	if o.Confirmed() {
		metrics.SettlementsTotal.WithLabelValues("confirmed").Inc()
		return o
	}
	metrics.SettlementsTotal.WithLabelValues("failed").Inc()
	var se *StageError
	if errors.As(o.Err, &se) {
		metrics.SettlementStageFailures.WithLabelValues(string(se.Stage)).Inc()
	}
	return o
}
