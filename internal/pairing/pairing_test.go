package pairing

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"
	"time"
)

func TestDisplayAddress(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"ipv4", Config{IP: "192.168.1.10", Port: 4455}, "192.168.1.10:4455"},
		{"loopback", Config{IP: "127.0.0.1", Port: 80}, "127.0.0.1:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DisplayAddress(); got != tt.want {
				t.Errorf("DisplayAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	cfg := Config{IP: "10.0.0.5", Port: 9000}
	if got, want := cfg.URL(), "ws://10.0.0.5:9000/ws"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestFreePort(t *testing.T) {
	port, err := FreePort()
	if err != nil {
		t.Fatalf("FreePort: %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Errorf("FreePort() = %d, want a valid port", port)
	}

	// The port must actually be bindable.
	l, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		t.Fatalf("listen on reported free port %d: %v", port, err)
	}
	l.Close()
}

func TestServerConfigHonorsConfiguredPort(t *testing.T) {
	cfg := ServerConfig(4455)
	if cfg.IP == "" {
		t.Error("ServerConfig returned empty IP")
	}
	if cfg.Port != 4455 {
		t.Errorf("ServerConfig(4455).Port = %d, want the configured port", cfg.Port)
	}
}

func TestServerConfigZeroProbesFreePort(t *testing.T) {
	cfg := ServerConfig(0)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		t.Errorf("ServerConfig(0).Port = %d, want a probed free port", cfg.Port)
	}
}

func TestQRPNG(t *testing.T) {
	cfg := Config{IP: "192.168.1.10", Port: 4455}
	png, err := cfg.QRPNG(256)
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("QRPNG output does not start with PNG magic: % x", png[:8])
	}
}

func TestResponderAnswersDiscovery(t *testing.T) {
	udpPort, err := freeUDPPort(t)
	if err != nil {
		t.Fatalf("free udp port: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewResponder("test-daemon", 4455, udpPort)
	go r.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	conn, err := net.Dial("udp4", net.JoinHostPort("127.0.0.1", strconv.Itoa(udpPort)))
	if err != nil {
		t.Fatalf("dial responder: %v", err)
	}
	defer conn.Close()

	probe, _ := json.Marshal(discoverMsg{Type: "discover", App: "keycast", V: 1})
	if _, err := conn.Write(probe); err != nil {
		t.Fatalf("send probe: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read announce: %v", err)
	}

	var resp announceMsg
	if err := json.Unmarshal(buf[:n], &resp); err != nil {
		t.Fatalf("decode announce: %v", err)
	}
	if resp.Type != "announce" || resp.App != "keycast" {
		t.Errorf("announce = %+v", resp)
	}
	if resp.Name != "test-daemon" || resp.WsPort != 4455 {
		t.Errorf("announce payload = %+v, want name/port echoed", resp)
	}
}

func TestResponderIgnoresForeignProbes(t *testing.T) {
	udpPort, err := freeUDPPort(t)
	if err != nil {
		t.Fatalf("free udp port: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewResponder("test-daemon", 4455, udpPort)
	go r.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	conn, err := net.Dial("udp4", net.JoinHostPort("127.0.0.1", strconv.Itoa(udpPort)))
	if err != nil {
		t.Fatalf("dial responder: %v", err)
	}
	defer conn.Close()

	probe, _ := json.Marshal(discoverMsg{Type: "discover", App: "some-other-app", V: 1})
	conn.Write(probe)

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	buf := make([]byte, 2048)
	if n, err := conn.Read(buf); err == nil {
		t.Errorf("responder answered a foreign probe: %s", buf[:n])
	}
}

func freeUDPPort(t *testing.T) (int, error) {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return 0, err
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port
	conn.Close()
	return port, nil
}

