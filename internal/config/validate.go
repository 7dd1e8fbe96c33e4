package config

import "fmt"

// Validate checks a node configuration for completeness and range errors.
// It does not mutate the configuration.
func (c *NodeConfig) Validate() error {
	if _, err := c.NodeIDValue(); err != nil {
		return err
	}
	if c.WLANSSID == "" {
		return fmt.Errorf("wlan_ssid must not be empty")
	}
	if c.WLANInterface == "" {
		return fmt.Errorf("wlan_iface must not be empty")
	}
	if c.MeasIntervalSec < 1 {
		return fmt.Errorf("meas_interval_sec must be at least 1, got %d", c.MeasIntervalSec)
	}
	return c.Radio.validate()
}

// Validate checks a gateway configuration.
func (c *GatewayConfig) Validate() error {
	if c.GatewayID == "" {
		return fmt.Errorf("gateway_id must not be empty")
	}
	if err := c.Radio.validate(); err != nil {
		return err
	}
	if c.Serial.Device != "" {
		if err := c.Serial.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *RadioConfig) validate() error {
	if r.Device == "" {
		return fmt.Errorf("radio: device must not be empty")
	}
	if r.BaudRate <= 0 {
		return fmt.Errorf("radio: baud_rate must be positive, got %d", r.BaudRate)
	}
	if r.NetworkID > 16 {
		return fmt.Errorf("radio: network_id must be 0-16, got %d", r.NetworkID)
	}
	if r.Frequency < 863000000 || r.Frequency > 870000000 {
		return fmt.Errorf("radio: frequency %d Hz outside the EU868 band (863-870 MHz)", r.Frequency)
	}
	if r.TxPower < 2 || r.TxPower > 14 {
		return fmt.Errorf("radio: tx_power must be 2-14 dBm, got %d", r.TxPower)
	}
	if r.SpreadingFactor < 7 || r.SpreadingFactor > 12 {
		return fmt.Errorf("radio: spreading_factor must be 7-12, got %d", r.SpreadingFactor)
	}
	if r.BandwidthKHz != 125 && r.BandwidthKHz != 250 {
		return fmt.Errorf("radio: bandwidth_khz must be 125 or 250, got %d", r.BandwidthKHz)
	}
	switch r.CodingRate {
	case "4/5", "4/6", "4/7", "4/8":
	default:
		return fmt.Errorf("radio: coding_rate must be one of 4/5, 4/6, 4/7, 4/8, got %q", r.CodingRate)
	}
	return nil
}

func (s *SerialConfig) validate() error {
	if s.BaudRate <= 0 {
		return fmt.Errorf("serial: baud_rate must be positive, got %d", s.BaudRate)
	}
	switch s.DataBits {
	case 5, 6, 7, 8:
	default:
		return fmt.Errorf("serial: data_bits must be 5-8, got %d", s.DataBits)
	}
	switch s.StopBits {
	case 1, 2:
	default:
		return fmt.Errorf("serial: stop_bits must be 1 or 2, got %d", s.StopBits)
	}
	switch s.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity must be N, E or O, got %q", s.Parity)
	}
	return nil
}
