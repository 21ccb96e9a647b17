package driftcore

import (
	"context"
	"fmt"
)

func NewExporter(cfg *ChainConfig) *Exporter {
	exp := &Exporter{
		cfg:    cfg,
		remote: NewEndpoint(cfg.Chain, cfg.RemoteUrl, "remote"),
		local:  NewEndpoint(cfg.Chain, cfg.LocalUrl, "local"),
	}
	// connect eagerly so request handling never mutates the
	// exporter
	exp.remote.connectRPC()
	exp.local.connectRPC()
	return exp
}

func (self *Exporter) Chain() string {
	return self.cfg.Chain
}

// Calculate fetches both heights and renders a fresh snapshot. The
// two fetches are sequential, remote first, each independently
// subject to failure. If either side is unreachable no partial
// gauges are emitted, only the error comment line.
func (self *Exporter) Calculate(rootCtx context.Context) string {
	metricsCalculations.Inc()

	remoteHeight, remoteErr := self.remote.BlockHeight(rootCtx, self.cfg.Method, self.cfg.Params, self.cfg.Encoding)
	localHeight, localErr := self.local.BlockHeight(rootCtx, self.cfg.Method, self.cfg.Params, self.cfg.Encoding)

	if remoteErr != nil || localErr != nil {
		return fmt.Sprintf("# Error: could not retrieve block height for chain '%s'\n", self.cfg.Chain)
	}

	// positive drift means the local node is behind
	drift := remoteHeight - localHeight

	metricsBlockHeight.With(self.local.prometheusLabels()).Set(float64(localHeight))
	metricsBlockHeight.With(self.remote.prometheusLabels()).Set(float64(remoteHeight))
	metricsDrift.WithLabelValues(self.cfg.Chain).Set(float64(drift))

	return fmt.Sprintf(
		"chain_block_height_local{chain=\"%s\"} %d\n"+
			"chain_block_height_remote{chain=\"%s\"} %d\n"+
			"chain_block_height_drift{chain=\"%s\"} %d\n",
		self.cfg.Chain, localHeight,
		self.cfg.Chain, remoteHeight,
		self.cfg.Chain, drift)
}
