package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/summercongcong/mini-trading-terminal/internal/balance"
	"github.com/summercongcong/mini-trading-terminal/internal/chain"
	"github.com/summercongcong/mini-trading-terminal/internal/config"
	"github.com/summercongcong/mini-trading-terminal/internal/session"
	"github.com/summercongcong/mini-trading-terminal/internal/util"
	"github.com/summercongcong/mini-trading-terminal/internal/wallet"
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewLogger(cfg.App.LogLevel)

	key, ok, err := wallet.LoadFromEnv()
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}
	if !ok {
		log.Fatalf("wallet: %s not set, nothing to show balances for", wallet.SecretEnvVar)
	}
	if cfg.Chain.RpcURL == "" {
		log.Fatalf("chain: no RPC endpoint configured")
	}

	sess := session.New(key, chain.New(cfg.Chain.RpcURL, cfg.Chain.Commitment))
	resolver := balance.NewResolver(sess.Conn, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := sess.PublicKey().String()
	for _, token := range cfg.Tokens {
		b := resolver.Resolve(ctx, owner, token.Mint, token.Decimals, config.NativeDecimals)
		fmt.Printf("%-8s %s (SOL %s)\n", token.Symbol, b.Token.Human, b.Native.Human)
	}
}
