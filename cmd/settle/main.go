package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/summercongcong/mini-trading-terminal/internal/balance"
	"github.com/summercongcong/mini-trading-terminal/internal/builder"
	"github.com/summercongcong/mini-trading-terminal/internal/chain"
	"github.com/summercongcong/mini-trading-terminal/internal/config"
	"github.com/summercongcong/mini-trading-terminal/internal/metrics"
	"github.com/summercongcong/mini-trading-terminal/internal/panel"
	"github.com/summercongcong/mini-trading-terminal/internal/session"
	"github.com/summercongcong/mini-trading-terminal/internal/settle"
	"github.com/summercongcong/mini-trading-terminal/internal/util"
	"github.com/summercongcong/mini-trading-terminal/internal/wallet"
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "config file path")
	symbol := flag.String("token", "", "configured token symbol to trade")
	side := flag.String("side", "buy", "buy or sell")
	lamports := flag.Uint64("amount", 10_000_000, "input amount in atomic units")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewLogger(cfg.App.LogLevel)
	if cfg.App.MetricsAddr != "" {
		metrics.Serve(cfg.App.MetricsAddr)
	}

	key, ok, err := wallet.LoadFromEnv()
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}
	if !ok || cfg.Chain.RpcURL == "" {
		log.Fatalf("trading disabled: wallet secret or RPC endpoint not configured")
	}

	var token *config.Token
	for i := range cfg.Tokens {
		if cfg.Tokens[i].Symbol == *symbol {
			token = &cfg.Tokens[i]
		}
	}
	if token == nil {
		log.Fatalf("token %q not configured", *symbol)
	}

	sess := session.New(key, chain.New(cfg.Chain.RpcURL, cfg.Chain.Commitment))
	resolver := balance.NewResolver(sess.Conn, logger)
	settler := settle.NewSettler(sess.Conn, sess.Key, logger, func(st settle.Stage) {
		logger.Info().Str("stage", string(st)).Msg("settlement progress")
	})
	pane := panel.New(cfg.Panel.X, cfg.Panel.Y, cfg.Panel.Width, cfg.Panel.Height)
	if cfg.Panel.Visible {
		pane.Show()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	if !pane.Begin() {
		log.Fatalf("panel not ready for settlement")
	}
	defer pane.End()

	jup := builder.NewClient(cfg.Builder.Base)
	req := builder.Request{
		Direction:   builder.Direction(*side),
		Mint:        token.Mint,
		Amount:      *lamports,
		SlippageBps: cfg.Builder.SlippageBps,
		Signer:      sess.PublicKey(),
	}
	quote, err := jup.GetQuote(ctx, req)
	if err != nil {
		log.Fatalf("quote: %v", err)
	}
	unsigned, err := jup.BuildTransaction(ctx, quote, sess.PublicKey())
	if err != nil {
		log.Fatalf("build: %v", err)
	}

	outcome := settler.Settle(ctx, unsigned)
	if !outcome.Confirmed() {
		log.Fatalf("settlement: %v", outcome.Err)
	}
	logger.Info().Str("sig", outcome.Signature.String()).Msg("trade confirmed")

	// One refresh after confirmation, so read replicas catch up first.
	time.Sleep(settle.RefreshDelay)
	b := resolver.Resolve(ctx, sess.PublicKey().String(), token.Mint, token.Decimals, config.NativeDecimals)
	logger.Info().Str("token", b.Token.Human.String()).Str("native", b.Native.Human.String()).Msg("balances after trade")
}
