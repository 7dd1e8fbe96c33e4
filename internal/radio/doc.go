// Package radio defines the transport interfaces between the packet codec
// and the LoRa hardware.
//
// The codec itself never touches a radio; nodes hold a Transmitter and
// gateways a Receiver. Both are blocking, context-aware operations - any
// timeout or cancellation policy lives in the caller's context.
//
// Two drivers exist: rylr speaks the AT command set of a REYAX RYLR896
// modem over a UART, and loopback is an in-memory pair for tests.
package radio
