package driftcore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockRPCServerFunc answers every JSON-RPC request with the result
// produced by fn, echoing the request id.
func mockRPCServerFunc(fn func() interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqmsg map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqmsg)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      reqmsg["id"],
			"result":  fn(),
		})
	}))
}

func mockRPCServer(result interface{}) *httptest.Server {
	return mockRPCServerFunc(func() interface{} {
		return result
	})
}

func mockRPCErrorServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqmsg map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqmsg)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      reqmsg["id"],
			"error": map[string]interface{}{
				"code":    -32601,
				"message": "method not found",
			},
		})
	}))
}

func TestHeightEncodingDecode(t *testing.T) {
	assert := assert.New(t)

	h, err := EncodingHex.Decode("0x10")
	assert.Nil(err)
	assert.Equal(16, h)

	h, err = EncodingDecimal.Decode("16")
	assert.Nil(err)
	assert.Equal(16, h)

	_, err = EncodingHex.Decode("16")
	assert.NotNil(err)

	_, err = EncodingDecimal.Decode("0x10")
	assert.NotNil(err)
}

func TestFetchHexHeight(t *testing.T) {
	assert := assert.New(t)

	server := mockRPCServer("0x10")
	defer server.Close()

	ep := NewEndpoint("eth", server.URL, "remote")
	height, err := ep.BlockHeight(context.Background(), "eth_blockNumber", []interface{}{}, EncodingHex)
	assert.Nil(err)
	assert.Equal(16, height)
}

func TestFetchDecimalHeight(t *testing.T) {
	assert := assert.New(t)

	server := mockRPCServer("16")
	defer server.Close()

	ep := NewEndpoint("sol", server.URL, "remote")
	height, err := ep.BlockHeight(context.Background(), "getBlockHeight", []interface{}{}, EncodingDecimal)
	assert.Nil(err)
	assert.Equal(16, height)
}

func TestFetchNumericResult(t *testing.T) {
	assert := assert.New(t)

	// solana reports the height as a bare JSON number
	server := mockRPCServer(345678901)
	defer server.Close()

	ep := NewEndpoint("sol", server.URL, "local")
	height, err := ep.BlockHeight(context.Background(), "getBlockHeight", []interface{}{}, EncodingDecimal)
	assert.Nil(err)
	assert.Equal(345678901, height)
}

func TestFetchMissingResult(t *testing.T) {
	assert := assert.New(t)

	server := mockRPCServer(nil)
	defer server.Close()

	ep := NewEndpoint("eth", server.URL, "local")
	_, err := ep.BlockHeight(context.Background(), "eth_blockNumber", []interface{}{}, EncodingHex)
	assert.NotNil(err)
}

func TestFetchRPCError(t *testing.T) {
	assert := assert.New(t)

	server := mockRPCErrorServer()
	defer server.Close()

	ep := NewEndpoint("eth", server.URL, "local")
	_, err := ep.BlockHeight(context.Background(), "eth_blockNumber", []interface{}{}, EncodingHex)
	assert.NotNil(err)
}

func TestFetchUnreachable(t *testing.T) {
	assert := assert.New(t)

	ep := NewEndpoint("eth", "http://127.0.0.1:1", "local")
	_, err := ep.BlockHeight(context.Background(), "eth_blockNumber", []interface{}{}, EncodingHex)
	assert.NotNil(err)
}
