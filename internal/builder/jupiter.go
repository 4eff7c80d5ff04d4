// Package builder obtains ready-to-sign swap transactions from an external
// transaction builder. Routing and price-impact logic live behind the HTTP
// API; this side only describes the trade and decodes the result.
package builder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// WrappedSOL is the native mint, the fixed leg of every terminal trade.
const WrappedSOL = "So11111111111111111111111111111111111111112"

// Direction is the trade side from the operator's point of view.
type Direction string

const (
	Buy  Direction = "buy"  // native -> token
	Sell Direction = "sell" // token -> native
)

// Request describes one trade for the builder.
type Request struct {
	Direction   Direction
	Mint        string // token leg of the pair
	Amount      uint64 // atomic units of the input leg
	SlippageBps int
	Signer      solana.PublicKey
}

// Quote is the builder's priced route for a trade.
type Quote struct {
	InputMint      string  `json:"inputMint"`
	OutputMint     string  `json:"outputMint"`
	InAmount       string  `json:"inAmount"`
	OutAmount      string  `json:"outAmount"`
	OtherAmount    string  `json:"otherAmountThreshold"`
	SlippageBps    int     `json:"slippageBps"`
	RoutePlan      any     `json:"routePlan"`
	PriceImpactPct float64 `json:"priceImpactPct"`
}

// Client talks to a Jupiter-compatible quote/swap API. It never holds key
// material; it only needs the signer's public key to address the transaction.
type Client struct {
	Base string
	Http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		Base: base,
		Http: &http.Client{Timeout: 8 * time.Second},
	}
}

// legs maps a direction onto input/output mints.
func (r Request) legs() (in, out string) {
	if r.Direction == Sell {
		return r.Mint, WrappedSOL
	}
	return WrappedSOL, r.Mint
}

// GetQuote prices the trade.
func (c *Client) GetQuote(ctx context.Context, req Request) (*Quote, error) {
	in, out := req.legs()
	q := url.Values{}
	q.Set("inputMint", in)
	q.Set("outputMint", out)
	q.Set("amount", fmt.Sprintf("%d", req.Amount))
	q.Set("slippageBps", fmt.Sprintf("%d", req.SlippageBps))
	q.Set("onlyDirectRoutes", "false")
	u := c.Base + "/v6/quote?" + q.Encode()

	httpReq, _ := http.NewRequestWithContext(ctx, "GET", u, nil)
	resp, err := c.Http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("builder quote status %d", resp.StatusCode)
	}
	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// BuildTransaction asks the builder for a transaction implementing the quote
// and decodes it, unsigned. Signing and submission belong to the settler.
func (c *Client) BuildTransaction(ctx context.Context, quote *Quote, signer solana.PublicKey) (*solana.Transaction, error) {
	payload := map[string]any{
		"userPublicKey":             signer.String(),
		"wrapAndUnwrapSol":          true,
		"asLegacyTransaction":       false,
		"useTokenLedger":            false,
		"prioritizationFeeLamports": 0,
		"quoteResponse":             quote,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.Base+"/v6/swap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("builder swap status %d", resp.StatusCode)
	}
	var sr struct {
		SwapTransaction string `json:"swapTransaction"` // base64-encoded tx (unsigned)
	}
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(sr.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("decode tx: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshal tx: %w", err)
	}
	return tx, nil
}
