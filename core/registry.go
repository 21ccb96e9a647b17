package driftcore

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

var evmParams = []interface{}{}

// the fixed registry of supported chains, solana reports decimal
// heights via getBlockHeight, the EVM family reports hex via
// eth_blockNumber
var chainRegistry = map[string]ChainConfig{
	"sol": {
		Chain:     "sol",
		LocalUrl:  "http://127.0.0.1:8899",
		RemoteUrl: "https://api.mainnet-beta.solana.com",
		Encoding:  EncodingDecimal,
		Method:    "getBlockHeight",
		Params:    []interface{}{},
	},
	"eth": {
		Chain:     "eth",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://ethereum.llamarpc.com",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"bsc": {
		Chain:     "bsc",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://bsc-dataseed1.binance.org/",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"base": {
		Chain:     "base",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://mainnet.base.org",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"sonic": {
		Chain:     "sonic",
		LocalUrl:  "http://127.0.0.1:18545",
		RemoteUrl: "https://sonic-rpc.publicnode.com:443",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"bera": {
		Chain:     "bera",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://berachain-rpc.publicnode.com",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"story": {
		Chain:     "story",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://mainnet.storyrpc.io",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"pulse": {
		Chain:     "pulse",
		LocalUrl:  "http://127.0.0.1:8545",
		RemoteUrl: "https://pulsechain-rpc.publicnode.com",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
	"avalanchego": {
		Chain:     "avalanchego",
		LocalUrl:  "http://127.0.0.1:8545/ext/bc/C/rpc",
		RemoteUrl: "https://avalanche.therpc.io",
		Encoding:  EncodingHex,
		Method:    "eth_blockNumber",
		Params:    evmParams,
	},
}

// ChainNames returns the sorted identifiers of all supported chains.
func ChainNames() []string {
	names := make([]string, 0, len(chainRegistry))
	for name := range chainRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChainConfigFor returns a copy of the registry entry so that
// startup overrides never touch the registry itself.
func ChainConfigFor(chain string) (*ChainConfig, error) {
	cfg, ok := chainRegistry[chain]
	if !ok {
		return nil, errors.Errorf("unknown chain %q", chain)
	}
	params := make([]interface{}, len(cfg.Params))
	copy(params, cfg.Params)
	cfg.Params = params
	return &cfg, nil
}

// EffectiveJSON serializes the config with sorted keys for the
// one-time startup log line.
func (self *ChainConfig) EffectiveJSON() string {
	dump := map[string]interface{}{
		"chain":    self.Chain,
		"local":    self.LocalUrl,
		"remote":   self.RemoteUrl,
		"encoding": self.Encoding.String(),
		"method":   self.Method,
		"params":   self.Params,
	}
	data, err := json.Marshal(dump)
	if err != nil {
		panic(err)
	}
	return string(data)
}
