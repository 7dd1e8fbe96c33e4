// Package monitor streams decoded records to watch clients over
// WebSocket and, optionally, advertises the stream endpoint via mDNS so
// clients on the same network can find gateways without configuration.
//
// The stream is one-way: the gateway pushes one JSON event per decoded
// record and ignores anything a client sends. A slow client is
// disconnected rather than allowed to stall the broadcast; the serial
// forwarder is the durable record path, the monitor stream is best
// effort by design.
package monitor
