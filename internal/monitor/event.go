package monitor

import (
	"fmt"
	"time"

	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
)

// Event is one decoded record as sent to watch clients.
type Event struct {
	GatewayID string    `json:"gateway_id"`
	RxTime    time.Time `json:"rx_time"`

	NodeID string `json:"node_id"` // four hex digits, e.g. "0007"
	MsgCnt uint32 `json:"msg_cnt"`
	Lost   uint64 `json:"lost"` // cumulative frames lost from this node

	LoraRSSI int `json:"lora_rssi"`
	LoraSNR  int `json:"lora_snr"`

	// WLAN measurement; nil when the node did not see the target network.
	WLAN *WLANMeasurement `json:"wlan,omitempty"`
}

// WLANMeasurement is the node's observation of the target network.
type WLANMeasurement struct {
	RSSI    int8   `json:"rssi"`
	Channel uint8  `json:"channel"`
	BSSID   string `json:"bssid"`
}

// NewEvent builds an Event from a decoded record.
func NewEvent(gatewayID string, rec *protocol.Record, stats radio.LinkStats, rxTime time.Time, lost uint64) Event {
	ev := Event{
		GatewayID: gatewayID,
		RxTime:    rxTime.UTC(),
		NodeID:    fmt.Sprintf("%04x", rec.NodeID),
		MsgCnt:    rec.MsgCnt,
		Lost:      lost,
		LoraRSSI:  stats.RSSI,
		LoraSNR:   stats.SNR,
	}

	if rec.Shape == protocol.ShapePresent {
		ev.WLAN = &WLANMeasurement{
			RSSI:    rec.RSSI,
			Channel: rec.Channel,
			BSSID: fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
				rec.BSSID[0], rec.BSSID[1], rec.BSSID[2], rec.BSSID[3], rec.BSSID[4], rec.BSSID[5]),
		}
	}

	return ev
}
