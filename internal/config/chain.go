// Package config also contains chain and builder configuration surfaces.
package config

// Chain defines the settlement chain endpoint. An empty RpcURL is a valid
// runtime state: trading features stay disabled instead of failing startup.
type Chain struct {
	RpcURL     string `yaml:"rpc_url"`
	Commitment string `yaml:"commitment"` // processed|confirmed|finalized
}

// Builder configures the external transaction-builder endpoint.
type Builder struct {
	Base        string `yaml:"base"`         // e.g. https://quote-api.jup.ag
	SlippageBps int    `yaml:"slippage_bps"`
}
