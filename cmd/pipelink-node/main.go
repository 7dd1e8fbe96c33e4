// Pipelink-node is the transmit side of a pipelink deployment.
//
// It periodically surveys for a target WLAN, encodes the measurement
// into a frame and transmits it over a LoRa modem towards the gateway.
//
// Usage:
//
//	pipelink-node run --config node.yaml
//
// See 'pipelink-node run --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipebots/pipelink/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pipelink-node",
	Short: "Pipelink measurement node",
	Long: `The measurement node of a pipelink deployment.

Each node carries a WLAN interface and a LoRa modem. On every measurement
interval the node scans for the configured SSID, packs the observation
(or an explicit not-seen marker) into a frame and transmits it to the
gateway. Frames are fire-and-forget; the gateway detects loss from the
message counter.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pipelink-node %s (commit: %s)\n", version.Version, version.Commit)
	},
}
