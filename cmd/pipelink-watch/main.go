// Pipelink-watch is a terminal viewer for a gateway's live record stream.
//
// It discovers gateways on the local network via mDNS (or connects to an
// explicit URL) and renders a per-node table of the latest measurements,
// LoRa link quality and cumulative loss.
//
// Usage:
//
//	pipelink-watch
//	pipelink-watch --url ws://gateway:8474/stream
//
// See 'pipelink-watch --help' for available options.
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

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pipelink-watch %s (commit: %s)\n", version.Version, version.Commit)
	},
}
