package watch

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/pipebots/pipelink/internal/monitor"
)

// Client is a subscription to one gateway's monitor stream.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a gateway stream URL, e.g. "ws://gw01.local:8474/stream".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Next blocks for the next event from the gateway.
func (c *Client) Next() (monitor.Event, error) {
	var ev monitor.Event
	if err := c.conn.ReadJSON(&ev); err != nil {
		return monitor.Event{}, fmt.Errorf("reading stream: %w", err)
	}
	return ev, nil
}

// Close tears the subscription down.
func (c *Client) Close() error {
	return c.conn.Close()
}
