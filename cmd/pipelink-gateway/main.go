// Pipelink-gateway is the receive side of a pipelink deployment.
//
// It pulls frames off the LoRa link, decodes them, tracks per-node loss
// and forwards each record as a log line to the host over UART. It can
// also stream records to watch clients over WebSocket and advertise the
// stream via mDNS.
//
// Usage:
//
//	pipelink-gateway run --config gateway.yaml
//
// See 'pipelink-gateway run --help' for available options.
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
	Use:   "pipelink-gateway",
	Short: "Pipelink receiving gateway",
	Long: `The receiving gateway of a pipelink deployment.

The gateway listens on the LoRa link, decodes each frame and fans the
record out to its sinks: the UART log line forwarder towards the logging
host and, when enabled, the live WebSocket stream for watch clients.
Malformed frames are logged and dropped; they never produce records.`,
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
		fmt.Printf("pipelink-gateway %s (commit: %s)\n", version.Version, version.Commit)
	},
}
