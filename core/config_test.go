package driftcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverrideConfig(t *testing.T) {
	assert := assert.New(t)

	ovrcfg := NewOverrideConfig()
	err := ovrcfg.LoadYamldata([]byte(`
chains:
  eth:
    local: http://10.0.0.5:8545
  sol:
    remote: https://solana.example.org
`))
	assert.Nil(err)

	eth, err := ChainConfigFor("eth")
	assert.Nil(err)
	ovrcfg.Apply(eth)
	assert.Equal("http://10.0.0.5:8545", eth.LocalUrl)
	// remote untouched
	assert.Equal("https://ethereum.llamarpc.com", eth.RemoteUrl)
	// fixed fields stay registry defined
	assert.Equal(EncodingHex, eth.Encoding)
	assert.Equal("eth_blockNumber", eth.Method)

	sol, err := ChainConfigFor("sol")
	assert.Nil(err)
	ovrcfg.Apply(sol)
	assert.Equal("http://127.0.0.1:8899", sol.LocalUrl)
	assert.Equal("https://solana.example.org", sol.RemoteUrl)
	assert.Equal(EncodingDecimal, sol.Encoding)
}

func TestOverrideConfigUnknownChain(t *testing.T) {
	assert := assert.New(t)

	ovrcfg := NewOverrideConfig()
	err := ovrcfg.LoadYamldata([]byte(`
chains:
  doge:
    local: http://127.0.0.1:9999
`))
	assert.NotNil(err)
	assert.Contains(err.Error(), "unknown chain")
}

func TestOverrideConfigNoEntry(t *testing.T) {
	assert := assert.New(t)

	ovrcfg := NewOverrideConfig()
	err := ovrcfg.LoadYamldata([]byte(`
chains:
  eth:
    local: http://10.0.0.5:8545
`))
	assert.Nil(err)

	bsc, err := ChainConfigFor("bsc")
	assert.Nil(err)
	ovrcfg.Apply(bsc)
	assert.Equal("http://127.0.0.1:8545", bsc.LocalUrl)
	assert.Equal("https://bsc-dataseed1.binance.org/", bsc.RemoteUrl)
}

func TestOverrideConfigJson(t *testing.T) {
	assert := assert.New(t)

	ovrcfg := NewOverrideConfig()
	err := ovrcfg.LoadJsondata([]byte(`{"chains": {"base": {"remote": "https://base.example.org"}}}`))
	assert.Nil(err)

	base, err := ChainConfigFor("base")
	assert.Nil(err)
	ovrcfg.Apply(base)
	assert.Equal("https://base.example.org", base.RemoteUrl)
}
