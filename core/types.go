package driftcore

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/superisaac/jsonz/http"
)

// HeightEncoding tells how a chain reports its block height in the
// JSON-RPC result field.
type HeightEncoding int

const (
	EncodingHex HeightEncoding = iota
	EncodingDecimal
)

func (self HeightEncoding) String() string {
	switch self {
	case EncodingHex:
		return "hex"
	case EncodingDecimal:
		return "decimal"
	default:
		return fmt.Sprintf("encoding(%d)", int(self))
	}
}

func ParseHeightEncoding(s string) (HeightEncoding, error) {
	switch s {
	case "hex":
		return EncodingHex, nil
	case "decimal":
		return EncodingDecimal, nil
	default:
		return 0, errors.Errorf("unknown height encoding %q", s)
	}
}

// Decode parses a raw result value into a block height
func (self HeightEncoding) Decode(raw string) (int, error) {
	switch self {
	case EncodingHex:
		height, err := hexutil.DecodeUint64(raw)
		if err != nil {
			return 0, errors.Wrap(err, "decode hex height")
		}
		return int(height), nil
	case EncodingDecimal:
		height, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "decode decimal height")
		}
		return int(height), nil
	default:
		return 0, errors.Errorf("unknown height encoding %d", int(self))
	}
}

// ChainConfig is the effective configuration of a monitored chain,
// built from the registry at startup. LocalUrl and RemoteUrl may be
// overridden once before the exporter is created, the other fields
// are fixed per chain.
type ChainConfig struct {
	Chain     string
	LocalUrl  string
	RemoteUrl string
	Encoding  HeightEncoding

	// the JSON-RPC method used to query the block height, the
	// request envelope is supplied by the jsonz codec
	Method string
	Params []interface{}
}

// Endpoint is one side (local or remote) of a drift measurement.
type Endpoint struct {
	Chain string
	Url   string
	Side  string // "local" or "remote", used in logs and telemetry

	rpcClient jsonzhttp.Client
}

// Exporter computes drift snapshots for one chain. Read-only after
// construction.
type Exporter struct {
	cfg    *ChainConfig
	remote *Endpoint
	local  *Endpoint
}
