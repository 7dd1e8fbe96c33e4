// Package watch is the terminal client for the gateway's monitor stream.
// It discovers gateways over mDNS (or connects to an explicit address),
// subscribes to the WebSocket record stream and renders a live per-node
// table: last sighting, WLAN measurement, LoRa link quality and
// cumulative loss.
//
// The client is read-only; it never sends anything to the gateway.
package watch
