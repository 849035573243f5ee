package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"
)

// appID identifies this application in discovery traffic.
const appID = "keycast"

// protocolVersion is bumped on incompatible discovery changes.
const protocolVersion = 1

type discoverMsg struct {
	Type string `json:"type"`
	App  string `json:"app"`
	V    int    `json:"v"`
}

type announceMsg struct {
	Type   string `json:"type"`
	App    string `json:"app"`
	V      int    `json:"v"`
	Name   string `json:"name"`
	WsPort int    `json:"ws_port"`
}

// Responder answers UDP discovery probes so companions can find the daemon
// without typing an address.
type Responder struct {
	name    string
	wsPort  int
	udpPort int
}

// NewResponder creates a responder announcing the given daemon name and
// WebSocket port.
func NewResponder(name string, wsPort, udpPort int) *Responder {
	return &Responder{name: name, wsPort: wsPort, udpPort: udpPort}
}

// Run listens for discovery probes until the context is cancelled. Probes
// from other applications or with an unparseable payload are ignored.
func (r *Responder) Run(ctx context.Context) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: r.udpPort})
	if err != nil {
		return fmt.Errorf("discovery listen: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 2048)
	for {
		n, remote, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Transient read errors are not fatal for a responder.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		var msg discoverMsg
		if err := json.Unmarshal(buf[:n], &msg); err != nil {
			continue
		}
		if !strings.EqualFold(msg.Type, "discover") || !strings.EqualFold(msg.App, appID) {
			continue
		}

		resp := announceMsg{
			Type:   "announce",
			App:    appID,
			V:      protocolVersion,
			Name:   r.name,
			WsPort: r.wsPort,
		}
		data, err := json.Marshal(resp)
		if err != nil {
			continue
		}
		_, _ = conn.WriteToUDP(data, remote)
	}
}
