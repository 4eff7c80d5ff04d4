package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcServer answers JSON-RPC calls with whatever the handler returns per method.
func rpcServer(t *testing.T, handler func(method string) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": handler(req.Method)}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestNewCommitment(t *testing.T) {
	assert.Equal(t, rpc.CommitmentConfirmed, New("https://rpc", "").Commit)
	assert.Equal(t, rpc.CommitmentConfirmed, New("https://rpc", "confirmed").Commit)
	assert.Equal(t, rpc.CommitmentProcessed, New("https://rpc", "processed").Commit)
	assert.Equal(t, rpc.CommitmentFinalized, New("https://rpc", "finalized").Commit)
}

func TestNativeBalance(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		require.Equal(t, "getBalance", method)
		return map[string]any{"context": map[string]any{"slot": 1}, "value": 1_000_000_000}
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	got, err := conn.NativeBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), got)
}

func TestTokenAccountBalance(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		require.Equal(t, "getTokenAccountBalance", method)
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": map[string]any{
				"amount":         "5000000",
				"decimals":       6,
				"uiAmount":       5.0,
				"uiAmountString": "5",
			},
		}
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	got, err := conn.TokenAccountBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, "5000000", got.String())
}

func TestLatestBlockhash(t *testing.T) {
	hash := solana.NewWallet().PublicKey().String() // any 32-byte base58 value
	server := rpcServer(t, func(method string) any {
		require.Equal(t, "getLatestBlockhash", method)
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": map[string]any{
				"blockhash":            hash,
				"lastValidBlockHeight": 123,
			},
		}
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	got, err := conn.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, got.Hash.String())
	assert.Equal(t, uint64(123), got.LastValidBlockHeight)
}

func confirmStatus(err any) any {
	return map[string]any{
		"context": map[string]any{"slot": 1},
		"value": []any{map[string]any{
			"slot":               5,
			"confirmations":      nil,
			"err":                err,
			"confirmationStatus": "confirmed",
		}},
	}
}

func TestConfirmSuccess(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		require.Equal(t, "getSignatureStatuses", method)
		return confirmStatus(nil)
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	conn.PollInterval = time.Millisecond
	conf, err := conn.Confirm(context.Background(), solana.Signature{1}, Blockhash{LastValidBlockHeight: 100})
	require.NoError(t, err)
	assert.NoError(t, conf.ExecErr)
}

func TestConfirmExecutionError(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		return confirmStatus(map[string]any{"InstructionError": []any{0, map[string]any{"Custom": 1}}})
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	conn.PollInterval = time.Millisecond
	conf, err := conn.Confirm(context.Background(), solana.Signature{1}, Blockhash{LastValidBlockHeight: 100})
	require.NoError(t, err, "confirmation itself was observed")
	assert.Error(t, conf.ExecErr)
}

func TestConfirmExpiresAtValidityHeight(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		switch method {
		case "getSignatureStatuses":
			return map[string]any{"context": map[string]any{"slot": 1}, "value": []any{nil}}
		case "getBlockHeight":
			return 200
		default:
			t.Fatalf("unexpected method %s", method)
			return nil
		}
	})
	defer server.Close()

	conn := New(server.URL, "confirmed")
	conn.PollInterval = time.Millisecond
	_, err := conn.Confirm(context.Background(), solana.Signature{1}, Blockhash{LastValidBlockHeight: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestConfirmHonorsContext(t *testing.T) {
	server := rpcServer(t, func(method string) any {
		switch method {
		case "getBlockHeight":
			return 1
		default:
			return map[string]any{"context": map[string]any{"slot": 1}, "value": []any{nil}}
		}
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	conn := New(server.URL, "confirmed")
	conn.PollInterval = time.Millisecond
	_, err := conn.Confirm(ctx, solana.Signature{1}, Blockhash{LastValidBlockHeight: 100})
	require.Error(t, err)
}
