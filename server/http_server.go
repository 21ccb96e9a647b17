package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/superisaac/blockdrift/core"
	"github.com/superisaac/jsonz/http"
)

func startServer(rootCtx context.Context, bind string, handler http.Handler, tlsConfigs ...*jsonzhttp.TLSConfig) error {
	var tlsConfig *jsonzhttp.TLSConfig
	for _, cfg := range tlsConfigs {
		if cfg != nil {
			tlsConfig = cfg
			break
		}
	}
	return jsonzhttp.ListenAndServe(rootCtx, bind, handler, tlsConfig)
}

// MetricsHandler answers GET /metrics. Every request recomputes the
// snapshot, so a scrape always triggers two fresh outbound RPC
// calls. Upstream failures still answer 200, the error is only
// visible in the body text and in logs.
type MetricsHandler struct {
	rootCtx  context.Context
	exporter *driftcore.Exporter
}

func NewMetricsHandler(rootCtx context.Context, exporter *driftcore.Exporter) *MetricsHandler {
	return &MetricsHandler{
		rootCtx:  rootCtx,
		exporter: exporter,
	}
}

func (self *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	output := self.exporter.Calculate(r.Context())
	log.Infof("exported metrics for %s:\n%s", self.exporter.Chain(), strings.TrimSpace(output))
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(output + "\n"))
}

func startTelemetryServer(rootCtx context.Context, bind string) {
	if bind == "" {
		log.Panicf("telemetry bind is empty")
		return
	}
	err := startServer(rootCtx, bind, promhttp.Handler())
	if err != nil {
		log.Warnf("start telemetry server error %s", err)
	}
}

func StartHTTPServer(rootCtx context.Context, bind string, telemetryBind string, exporter *driftcore.Exporter) error {
	log.Infof("starting HTTP server for %s on %s", exporter.Chain(), bind)

	serverMux := http.NewServeMux()
	serverMux.Handle("/metrics", NewMetricsHandler(rootCtx, exporter))

	if telemetryBind != "" {
		go startTelemetryServer(rootCtx, telemetryBind)
	}

	return startServer(rootCtx, bind, serverMux)
}
