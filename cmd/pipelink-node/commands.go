package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/node"
	"github.com/pipebots/pipelink/internal/radio/rylr"
	"github.com/pipebots/pipelink/internal/wlan"
)

// Run command flags
var (
	configPath  string
	logLevel    string
	gatewayAddr uint16
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the measurement loop",
	Long: `Start the node's measurement loop.

The node reads its configuration once at startup, programs the LoRa modem
and then runs measurement cycles until interrupted. The first cycle fires
immediately; later cycles follow the configured interval.`,
	Example: `  # Run with the deployment configuration
  pipelink-node run --config /etc/pipelink/node.yaml

  # Run with verbose logging and an explicit gateway link address
  pipelink-node run --config node.yaml --log-level debug --gateway-addr 1`,
	RunE: runNode,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the node configuration file (required)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; silent when empty)")
	runCmd.Flags().Uint16Var(&gatewayAddr, "gateway-addr", 0, "Gateway link address (0 = broadcast)")

	_ = runCmd.MarkFlagRequired("config")
}

func runNode(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.LoadNode(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	modem, err := rylr.Open(ctx, cfg.Radio, gatewayAddr)
	if err != nil {
		return fmt.Errorf("opening LoRa modem: %w", err)
	}
	defer modem.Close()

	scanner := &wlan.IWScanner{Interface: cfg.WLANInterface}

	runner, err := node.New(cfg, scanner, modem)
	if err != nil {
		return err
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
