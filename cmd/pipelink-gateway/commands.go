package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/forward"
	"github.com/pipebots/pipelink/internal/gateway"
	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/monitor"
	"github.com/pipebots/pipelink/internal/radio/rylr"
)

// Run command flags
var (
	configPath string
	logLevel   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the receive loop",
	Long: `Start the gateway's receive loop.

The gateway programs the LoRa modem from its configuration, then receives
and decodes frames until interrupted. Records are forwarded over UART
when a serial device is configured and streamed to watch clients when a
monitor listen address is configured.`,
	Example: `  # Run with the deployment configuration
  pipelink-gateway run --config /etc/pipelink/gateway.yaml

  # Run with verbose logging
  pipelink-gateway run --config gateway.yaml --log-level debug`,
	RunE: runGateway,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the gateway configuration file (required)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; silent when empty)")

	_ = runCmd.MarkFlagRequired("config")
}

func runGateway(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.LoadGateway(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	modem, err := rylr.Open(ctx, cfg.Radio, 0)
	if err != nil {
		return fmt.Errorf("opening LoRa modem: %w", err)
	}
	defer modem.Close()

	var sinks []gateway.Sink

	if cfg.Serial.Device != "" {
		port, err := forward.OpenSerial(cfg.Serial)
		if err != nil {
			return err
		}
		defer port.Close()

		sinks = append(sinks, forward.NewForwarder(port, forward.Formatter{
			GatewayID: cfg.GatewayID,
		}))
	}

	if cfg.Monitor.ListenAddr != "" {
		hub := monitor.NewHub()
		sinks = append(sinks, monitor.NewPublisher(cfg.GatewayID, hub))

		srv := monitor.NewServer(cfg.Monitor, cfg.GatewayID, hub)
		go func() {
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error("Monitor server stopped", zap.Error(err))
			}
		}()
	}

	runner := gateway.New(modem, sinks...)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
