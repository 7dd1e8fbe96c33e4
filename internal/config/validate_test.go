package config

import (
	"strings"
	"testing"
)

func validNode() NodeConfig {
	return NodeConfig{
		NodeID:          "0007",
		WLANSSID:        "survey-ap",
		WLANInterface:   "wlan0",
		MeasIntervalSec: 60,
		MeasNA:          0xFF,
		Radio:           validRadio(),
	}
}

func validRadio() RadioConfig {
	return RadioConfig{
		Device:          "/dev/ttyS0",
		BaudRate:        115200,
		Address:         1,
		NetworkID:       5,
		Frequency:       868100000,
		TxPower:         14,
		SpreadingFactor: 7,
		BandwidthKHz:    125,
		CodingRate:      "4/5",
	}
}

func TestNodeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NodeConfig)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *NodeConfig) {},
		},
		{
			name:    "node id not hex",
			mutate:  func(c *NodeConfig) { c.NodeID = "zz07" },
			wantErr: "not valid hex",
		},
		{
			name:    "node id wrong width",
			mutate:  func(c *NodeConfig) { c.NodeID = "000007" },
			wantErr: "exactly two bytes",
		},
		{
			name:    "missing ssid",
			mutate:  func(c *NodeConfig) { c.WLANSSID = "" },
			wantErr: "wlan_ssid",
		},
		{
			name:    "missing interface",
			mutate:  func(c *NodeConfig) { c.WLANInterface = "" },
			wantErr: "wlan_iface",
		},
		{
			name:    "zero interval",
			mutate:  func(c *NodeConfig) { c.MeasIntervalSec = 0 },
			wantErr: "meas_interval_sec",
		},
		{
			name:    "frequency below band",
			mutate:  func(c *NodeConfig) { c.Radio.Frequency = 862000000 },
			wantErr: "EU868",
		},
		{
			name:    "frequency above band",
			mutate:  func(c *NodeConfig) { c.Radio.Frequency = 871000000 },
			wantErr: "EU868",
		},
		{
			name:    "tx power too high",
			mutate:  func(c *NodeConfig) { c.Radio.TxPower = 20 },
			wantErr: "tx_power",
		},
		{
			name:    "tx power too low",
			mutate:  func(c *NodeConfig) { c.Radio.TxPower = 1 },
			wantErr: "tx_power",
		},
		{
			name:    "spreading factor out of range",
			mutate:  func(c *NodeConfig) { c.Radio.SpreadingFactor = 6 },
			wantErr: "spreading_factor",
		},
		{
			name:    "unsupported bandwidth",
			mutate:  func(c *NodeConfig) { c.Radio.BandwidthKHz = 500 },
			wantErr: "bandwidth_khz",
		},
		{
			name:    "unsupported coding rate",
			mutate:  func(c *NodeConfig) { c.Radio.CodingRate = "4/9" },
			wantErr: "coding_rate",
		},
		{
			name:    "network id out of range",
			mutate:  func(c *NodeConfig) { c.Radio.NetworkID = 17 },
			wantErr: "network_id",
		},
		{
			name:    "missing radio device",
			mutate:  func(c *NodeConfig) { c.Radio.Device = "" },
			wantErr: "device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validNode()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestGatewayConfigValidate(t *testing.T) {
	valid := GatewayConfig{
		GatewayID: "manhole-3",
		Radio:     validRadio(),
		Serial: SerialConfig{
			Device:    "/dev/ttyAMA0",
			BaudRate:  115200,
			DataBits:  8,
			StopBits:  1,
			Parity:    "N",
			TimeoutMs: 2000,
		},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	t.Run("missing gateway id", func(t *testing.T) {
		cfg := valid
		cfg.GatewayID = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("serial optional when device empty", func(t *testing.T) {
		cfg := valid
		cfg.Serial = SerialConfig{}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("bad parity", func(t *testing.T) {
		cfg := valid
		cfg.Serial.Parity = "X"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})
}

func TestNodeIDValue(t *testing.T) {
	cfg := validNode()
	cfg.NodeID = "1234"

	id, err := cfg.NodeIDValue()
	if err != nil {
		t.Fatalf("NodeIDValue() error = %v", err)
	}
	if id != 0x1234 {
		t.Errorf("NodeIDValue() = 0x%04X, want 0x1234", id)
	}
}
