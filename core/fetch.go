package driftcore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/superisaac/jsonz"
	"github.com/superisaac/jsonz/http"
)

// one attempt per fetch, no retries
const fetchTimeout = 3 * time.Second

func NewEndpoint(chain string, url string, side string) *Endpoint {
	return &Endpoint{Chain: chain, Url: url, Side: side}
}

func (self *Endpoint) Log() *log.Entry {
	return log.WithFields(log.Fields{
		"chain":    self.Chain,
		"endpoint": self.Side,
		"url":      self.Url,
	})
}

func (self *Endpoint) connectRPC() {
	if self.rpcClient == nil {
		c, err := jsonzhttp.GetClient(self.Url)
		if err != nil {
			panic(err)
		}
		self.rpcClient = c
	}
}

func (self *Endpoint) CallRPC(rootCtx context.Context, reqmsg *jsonz.RequestMessage) (jsonz.Message, error) {
	self.connectRPC()
	return self.rpcClient.Call(rootCtx, reqmsg)
}

// BlockHeight queries the endpoint once for its current block
// height. Transport errors, JSON-RPC error responses, missing
// results and undecodable results are all logged with the offending
// URL and returned as plain errors, nothing raises past this
// boundary.
func (self *Endpoint) BlockHeight(rootCtx context.Context, method string, params []interface{}, encoding HeightEncoding) (int, error) {
	ctx, cancel := context.WithTimeout(rootCtx, fetchTimeout)
	defer cancel()

	reqId := strings.ReplaceAll(uuid.New().String(), "-", "")
	reqmsg := jsonz.NewRequestMessage(reqId, method, params)
	resmsg, err := self.CallRPC(ctx, reqmsg)
	if err != nil {
		return 0, self.fetchFailed(err)
	}
	if !resmsg.IsResult() {
		// the RPC error body is kept in the log line for
		// diagnosis, callers only see an absent height
		return 0, self.fetchFailed(resmsg.MustError())
	}

	var raw string
	if err := weakDecode(resmsg.MustResult(), &raw); err != nil {
		return 0, self.fetchFailed(err)
	}
	height, err := encoding.Decode(raw)
	if err != nil {
		return 0, self.fetchFailed(err)
	}
	return height, nil
}

func (self *Endpoint) fetchFailed(err error) error {
	log.Errorf("failed to fetch block height from %s: %s", self.Url, err)
	metricsFetchFailures.With(self.prometheusLabels()).Inc()
	return err
}

// weakDecode converts a JSON-RPC result into the target type,
// tolerating numeric results the way solana reports them.
func weakDecode(input interface{}, output interface{}) error {
	if input == nil {
		return errors.New("missing result field")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return errors.Wrap(err, "decode result")
	}
	return nil
}
