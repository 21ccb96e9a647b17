package driftcore

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsBlockHeight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockdrift",
		Name:      "block_height",
		Help:      "last fetched block height per endpoint",
	}, []string{"chain", "endpoint"})

	metricsDrift = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockdrift",
		Name:      "drift",
		Help:      "remote minus local block height",
	}, []string{"chain"})

	metricsFetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockdrift",
		Name:      "fetch_failures_total",
		Help:      "count of failed block height fetches",
	}, []string{"chain", "endpoint"})

	metricsCalculations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockdrift",
		Name:      "calculations_total",
		Help:      "count of drift calculations",
	})
)

func init() {
	prometheus.MustRegister(metricsBlockHeight)
	prometheus.MustRegister(metricsDrift)
	prometheus.MustRegister(metricsFetchFailures)
	prometheus.MustRegister(metricsCalculations)
}

func (self *Endpoint) prometheusLabels() prometheus.Labels {
	return prometheus.Labels{
		"chain":    self.Chain,
		"endpoint": self.Side,
	}
}
