// Package config loads and validates the deployment configuration for the
// pipelink node and gateway binaries.
//
// Configuration is read once at startup and passed down as explicit structs;
// nothing in this package is global or mutable after loading. Files are
// parsed with yaml.v3, which also accepts the JSON config files used by the
// original field deployments.
//
// Validation mirrors the constraints of the EU868 LoRa hardware: frequency
// 863-870 MHz, transmit power 2-14 dBm, spreading factor 7-12, bandwidth
// 125 or 250 kHz, coding rate 4/5 through 4/8.
package config
