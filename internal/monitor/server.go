package monitor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/gateway"
	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
)

const (
	// ServiceType is the mDNS service type gateways advertise under
	ServiceType = "_pipelink._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// StreamPath is the WebSocket endpoint watch clients connect to
	StreamPath = "/stream"
)

// Publisher is a gateway sink that broadcasts records to watch clients.
// It keeps its own loss tracker; the receive loop calls sinks one at a
// time, so no locking is needed.
type Publisher struct {
	gatewayID string
	hub       *Hub
	tracker   *gateway.Tracker
}

var _ gateway.Sink = (*Publisher)(nil)

// NewPublisher builds a sink that feeds hub.
func NewPublisher(gatewayID string, hub *Hub) *Publisher {
	return &Publisher{
		gatewayID: gatewayID,
		hub:       hub,
		tracker:   gateway.NewTracker(),
	}
}

// Consume converts the record to an event and broadcasts it.
func (p *Publisher) Consume(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) error {
	p.tracker.Observe(rec.NodeID, rec.MsgCnt)
	p.hub.Broadcast(NewEvent(p.gatewayID, rec, stats, rxTime, p.tracker.Lost(rec.NodeID)))
	return nil
}

// Server hosts the watch stream and its optional mDNS advertisement.
type Server struct {
	cfg       config.MonitorConfig
	gatewayID string
	hub       *Hub
}

// NewServer builds a monitor server for the given gateway configuration.
func NewServer(cfg config.MonitorConfig, gatewayID string, hub *Hub) *Server {
	return &Server{cfg: cfg, gatewayID: gatewayID, hub: hub}
}

// Run serves the stream until the context is cancelled, then shuts the
// listener down and disconnects every client.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(StreamPath, s.hub.Handler())

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var shutdownAnnounce func()
	if s.cfg.Advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		shutdownAnnounce, err = s.announce(port)
		if err != nil {
			// The stream still works without discovery; log and carry on.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	logging.Info("Monitor stream listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("path", StreamPath),
	)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("monitor server: %w", err)
	}

	if shutdownAnnounce != nil {
		shutdownAnnounce()
	}
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down monitor server: %w", err)
	}
	return ctx.Err()
}

// announce registers the stream endpoint with mDNS and returns a
// function that withdraws the advertisement.
func (s *Server) announce(port int) (func(), error) {
	instance := s.cfg.Instance
	if instance == "" {
		instance = s.gatewayID
	}
	// Instance names with dots confuse some resolvers.
	instance = strings.ReplaceAll(instance, ".", "-")

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = instance
	}

	txt := []string{
		"gateway_id=" + s.gatewayID,
		"path=" + StreamPath,
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("registering mDNS service: %w", err)
	}

	logging.Info("Advertising monitor stream",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.String("host", host),
		zap.Int("port", port),
	)

	return server.Shutdown, nil
}
