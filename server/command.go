package server

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/superisaac/blockdrift/core"
)

var (
	serveMode     bool
	port          int
	remoteUrl     string
	localUrl      string
	configPath    string
	telemetryBind string
	logOutput     string

	rootCmd = &cobra.Command{
		Use:   "blockdrift <chain>",
		Short: "Block drift Prometheus exporter",
		Long: `Polls the local RPC endpoint of a blockchain node and a public
remote endpoint of the same chain, computes the block height drift
and exposes it as Prometheus metrics, either over HTTP or as a
one-shot console dump.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: driftcore.ChainNames(),
		RunE:      runRoot,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&serveMode, "serve", false, "start HTTP server")
	rootCmd.Flags().IntVar(&port, "port", 9100, "HTTP server port")
	rootCmd.Flags().StringVar(&remoteUrl, "remote", "", "remote chain address")
	rootCmd.Flags().StringVar(&localUrl, "local", "", "local chain address")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to an endpoint override file")
	rootCmd.Flags().StringVar(&telemetryBind, "telemetry-bind", "", "bind address of the self telemetry server")
	rootCmd.Flags().StringVar(&logOutput, "log", "", "path to log output, default is stdout")
}

func setupLogger(logOutput string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if logOutput == "" {
		logOutput = os.Getenv("LOG_OUTPUT")
	}
	if logOutput == "" || logOutput == "console" || logOutput == "stdout" {
		log.SetOutput(os.Stdout)
	} else if logOutput == "stderr" {
		log.SetOutput(os.Stderr)
	} else {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic(err)
		}
		log.SetOutput(file)
	}

	envLogLevel := os.Getenv("LOG_LEVEL")
	switch envLogLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// buildChainConfig assembles the effective config for the chain:
// registry defaults, then the override file, then the command line
// flags. Only the endpoint URLs are overridable.
func buildChainConfig(chain string) (*driftcore.ChainConfig, error) {
	cfg, err := driftcore.ChainConfigFor(chain)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		ovrcfg, err := driftcore.OverrideConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
		ovrcfg.Apply(cfg)
	}
	if remoteUrl != "" {
		cfg.RemoteUrl = remoteUrl
	}
	if localUrl != "" {
		cfg.LocalUrl = localUrl
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	setupLogger(logOutput)

	cfg, err := buildChainConfig(args[0])
	if err != nil {
		return err
	}
	log.Infof("effective config: %s", cfg.EffectiveJSON())

	exporter := driftcore.NewExporter(cfg)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if serveMode {
		bind := fmt.Sprintf("0.0.0.0:%d", port)
		return StartHTTPServer(rootCtx, bind, telemetryBind, exporter)
	}

	output := exporter.Calculate(rootCtx)
	log.Infof("exported metrics for %s:\n%s", cfg.Chain, strings.TrimSpace(output))
	fmt.Print(output)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
