package rylr

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseRecv(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantAddr uint16
		wantData []byte
		wantRSSI int
		wantSNR  int
		wantErr  string
	}{
		{
			name:     "typical frame",
			line:     "+RCV=1,8,00072A1B,-99,11",
			wantAddr: 1,
			wantData: []byte{0x00, 0x07, 0x2A, 0x1B},
			wantRSSI: -99,
			wantSNR:  11,
		},
		{
			name:     "lowercase hex accepted",
			line:     "+RCV=50,4,c1ff,-120,-3",
			wantAddr: 50,
			wantData: []byte{0xC1, 0xFF},
			wantRSSI: -120,
			wantSNR:  -3,
		},
		{
			name:    "not an rcv line",
			line:    "+OK",
			wantErr: "not a +RCV line",
		},
		{
			name:    "too few fields",
			line:    "+RCV=1,4,AABB,-99",
			wantErr: "fields",
		},
		{
			name:    "length disagrees with data",
			line:    "+RCV=1,6,AABB,-99,11",
			wantErr: "length field",
		},
		{
			name:    "data not hex",
			line:    "+RCV=1,4,WXYZ,-99,11",
			wantErr: "bad +RCV data",
		},
		{
			name:    "address overflows uint16",
			line:    "+RCV=70000,4,AABB,-99,11",
			wantErr: "bad +RCV address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, addr, err := parseRecv(tt.line)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("parseRecv() = nil error, want %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseRecv() error = %v, want substring %q", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("parseRecv() error = %v", err)
			}
			if addr != tt.wantAddr {
				t.Errorf("address = %d, want %d", addr, tt.wantAddr)
			}
			if !bytes.Equal(frame.Data, tt.wantData) {
				t.Errorf("data = % X, want % X", frame.Data, tt.wantData)
			}
			if frame.Stats.RSSI != tt.wantRSSI {
				t.Errorf("rssi = %d, want %d", frame.Stats.RSSI, tt.wantRSSI)
			}
			if frame.Stats.SNR != tt.wantSNR {
				t.Errorf("snr = %d, want %d", frame.Stats.SNR, tt.wantSNR)
			}
		})
	}
}

func TestBandwidthIndex(t *testing.T) {
	if idx, err := bandwidthIndex(125); err != nil || idx != 7 {
		t.Errorf("bandwidthIndex(125) = %d, %v", idx, err)
	}
	if idx, err := bandwidthIndex(250); err != nil || idx != 8 {
		t.Errorf("bandwidthIndex(250) = %d, %v", idx, err)
	}
	if _, err := bandwidthIndex(500); err == nil {
		t.Error("bandwidthIndex(500) = nil error, want error")
	}
}

func TestCodingRateIndex(t *testing.T) {
	want := map[string]int{"4/5": 1, "4/6": 2, "4/7": 3, "4/8": 4}
	for rate, idx := range want {
		got, err := codingRateIndex(rate)
		if err != nil || got != idx {
			t.Errorf("codingRateIndex(%q) = %d, %v; want %d", rate, got, err, idx)
		}
	}
	if _, err := codingRateIndex("4/9"); err == nil {
		t.Error("codingRateIndex(4/9) = nil error, want error")
	}
}
