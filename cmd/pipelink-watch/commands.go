package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/version"
	"github.com/pipebots/pipelink/internal/watch"
)

// Root command flags
var (
	streamURL   string
	scanTimeout int
)

var rootCmd = &cobra.Command{
	Use:   "pipelink-watch",
	Short: "Live view of a pipelink gateway",
	Long: `A terminal viewer for the gateway's live record stream.

Without flags, pipelink-watch scans the local network for advertised
gateways and connects to the first one it finds. Use --url to connect to
a known gateway directly.`,
	Example: `  # Discover a gateway and watch it
  pipelink-watch

  # Watch a known gateway
  pipelink-watch --url ws://192.168.4.1:8474/stream

  # Scan longer on a slow network
  pipelink-watch --timeout 15`,
	Version: version.Version,
	RunE:    runWatch,
}

func init() {
	rootCmd.Flags().StringVar(&streamURL, "url", "", "Gateway stream URL (skips discovery)")
	rootCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Discovery scan timeout in seconds")

	rootCmd.AddCommand(versionCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("pipelink-watch needs an interactive terminal")
	}

	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	ctx := context.Background()

	url := streamURL
	name := url
	if url == "" {
		fmt.Fprintf(os.Stderr, "Scanning for gateways (%ds)...\n", scanTimeout)

		gateways, err := watch.Discover(ctx, time.Duration(scanTimeout)*time.Second)
		if err != nil {
			return err
		}
		if len(gateways) == 0 {
			return fmt.Errorf("no gateways found; is the gateway advertising, or use --url")
		}

		gw := gateways[0]
		if len(gateways) > 1 {
			fmt.Fprintf(os.Stderr, "Found %d gateways, connecting to %s\n", len(gateways), gw.GatewayID)
		}
		url = gw.URL
		name = gw.GatewayID
	}

	client, err := watch.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	program := tea.NewProgram(watch.NewModel(name, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running watch UI: %w", err)
	}
	return nil
}
