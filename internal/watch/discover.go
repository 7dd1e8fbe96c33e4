package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/pipebots/pipelink/internal/monitor"
)

// DefaultDiscoverTimeout bounds how long a discovery scan waits.
const DefaultDiscoverTimeout = 5 * time.Second

// Gateway is one advertised monitor stream found on the local network.
type Gateway struct {
	GatewayID string
	Instance  string
	URL       string // ready-to-dial ws:// URL
}

// Discover browses for gateway streams until timeout elapses. It returns
// every gateway seen; an empty slice means none advertised in time.
func Discover(ctx context.Context, timeout time.Duration) ([]Gateway, error) {
	if timeout <= 0 {
		timeout = DefaultDiscoverTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("creating mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	gateways := make([]Gateway, 0)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			if gw, ok := parseEntry(entry); ok {
				gateways = append(gateways, gw)
			}
		}
	}()

	if err := resolver.Browse(ctx, monitor.ServiceType, monitor.ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("browsing for gateways: %w", err)
	}

	<-ctx.Done()
	<-done

	return gateways, nil
}

// parseEntry turns a service entry into a dialable gateway. Entries
// without a usable address are skipped.
func parseEntry(entry *zeroconf.ServiceEntry) (Gateway, bool) {
	var host string
	for _, addr := range entry.AddrIPv4 {
		host = addr.String()
		break
	}
	if host == "" && len(entry.AddrIPv6) > 0 {
		host = "[" + entry.AddrIPv6[0].String() + "]"
	}
	if host == "" || entry.Port == 0 {
		return Gateway{}, false
	}

	gatewayID := entry.Instance
	path := monitor.StreamPath
	for _, txt := range entry.Text {
		if v, ok := strings.CutPrefix(txt, "gateway_id="); ok && v != "" {
			gatewayID = v
		}
		if v, ok := strings.CutPrefix(txt, "path="); ok && v != "" {
			path = v
		}
	}

	return Gateway{
		GatewayID: gatewayID,
		Instance:  entry.Instance,
		URL:       fmt.Sprintf("ws://%s:%d%s", host, entry.Port, path),
	}, true
}
