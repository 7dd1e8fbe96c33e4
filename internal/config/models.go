package config

import (
	"encoding/hex"
	"fmt"
)

// NodeConfig is the runtime configuration for a measurement node.
// It is read once at startup and never mutated afterwards.
type NodeConfig struct {
	// NodeID is the two-byte transmitter identifier as a hex string,
	// e.g. "0007". Fixed for the duration of a deployment.
	NodeID string `yaml:"node_id"`

	// WLANSSID is the network whose signal strength is being surveyed.
	WLANSSID string `yaml:"wlan_ssid"`

	// WLANInterface is the local wireless interface used for scanning.
	WLANInterface string `yaml:"wlan_iface"`

	// MeasIntervalSec is the measurement period in seconds.
	MeasIntervalSec int `yaml:"meas_interval_sec"`

	// MeasNA is the sentinel byte transmitted (three times) when the
	// target network was not observed in a cycle.
	MeasNA uint8 `yaml:"meas_na"`

	Radio RadioConfig `yaml:"radio"`
}

// GatewayConfig is the runtime configuration for a receiving gateway.
type GatewayConfig struct {
	// GatewayID identifies this gateway in the forwarded log lines.
	GatewayID string `yaml:"gateway_id"`

	Radio RadioConfig `yaml:"radio"`

	// Serial is the UART link to the logging host. Optional; when the
	// device is empty, nothing is forwarded over serial.
	Serial SerialConfig `yaml:"serial"`

	// Monitor is the live record stream for watch clients. Optional;
	// when the listen address is empty, the stream is disabled.
	Monitor MonitorConfig `yaml:"monitor"`
}

// RadioConfig describes the LoRa modem and its RF parameters. The ranges
// mirror the EU868 deployment the hardware is certified for.
type RadioConfig struct {
	// Device is the serial device of the LoRa modem, e.g. "/dev/ttyS0".
	Device string `yaml:"device"`

	// BaudRate is the UART speed to the modem.
	BaudRate int `yaml:"baud_rate"`

	// Address is the modem's link address. The protocol carries its own
	// node id; this only scopes the raw radio link.
	Address uint16 `yaml:"address"`

	// NetworkID must match across all radios in the deployment, 0-16.
	NetworkID uint8 `yaml:"network_id"`

	// Frequency is the centre frequency in Hz, 863-870 MHz.
	Frequency uint32 `yaml:"frequency"`

	// TxPower is the transmit power in dBm, 2-14.
	TxPower int `yaml:"tx_power"`

	// SpreadingFactor is the LoRa SF, 7-12.
	SpreadingFactor int `yaml:"spreading_factor"`

	// BandwidthKHz is the channel bandwidth, 125 or 250.
	BandwidthKHz int `yaml:"bandwidth_khz"`

	// CodingRate is the LoRa FEC rate: "4/5", "4/6", "4/7" or "4/8".
	CodingRate string `yaml:"coding_rate"`
}

// SerialConfig describes the UART link from a gateway to the logging host.
type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // "N", "E" or "O"
	TimeoutMs int    `yaml:"timeout_ms"`
}

// MonitorConfig describes the gateway's live record stream.
type MonitorConfig struct {
	// ListenAddr is the HTTP listen address, e.g. ":8474".
	ListenAddr string `yaml:"listen_addr"`

	// Advertise enables mDNS advertisement of the stream endpoint.
	Advertise bool `yaml:"advertise"`

	// Instance is the mDNS instance name; defaults to the gateway id.
	Instance string `yaml:"instance"`
}

// NodeIDValue parses the hex node id into its wire representation.
func (c *NodeConfig) NodeIDValue() (uint16, error) {
	raw, err := hex.DecodeString(c.NodeID)
	if err != nil {
		return 0, fmt.Errorf("node_id %q is not valid hex: %w", c.NodeID, err)
	}
	if len(raw) != 2 {
		return 0, fmt.Errorf("node_id %q must be exactly two bytes, got %d", c.NodeID, len(raw))
	}
	return uint16(raw[0])<<8 | uint16(raw[1]), nil
}
