package pairing

import (
	"fmt"
	"net"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// Config is the connection endpoint surfaced to the pairing UI.
type Config struct {
	IP   string
	Port int
}

// LocalIP returns the machine's outbound local IPv4 address. The UDP dial
// sends no packets; it only forces route selection.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("determine local address: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// FreePort asks the kernel for an unused TCP port.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("bind free port: %w", err)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address type %T", l.Addr())
	}
	return addr.Port, nil
}

// ServerConfig resolves the endpoint companions connect to. A nonzero port
// is honored as configured; zero asks the kernel for a free one. The IP
// falls back to the loopback address when route discovery fails, so the
// daemon always has an endpoint to announce.
func ServerConfig(port int) Config {
	ip, err := LocalIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	if port == 0 {
		if p, err := FreePort(); err == nil {
			port = p
		}
	}
	return Config{IP: ip, Port: port}
}

// DisplayAddress formats the endpoint for display next to the QR code.
func (c Config) DisplayAddress() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// URL returns the WebSocket URL a companion connects to.
func (c Config) URL() string {
	return "ws://" + c.DisplayAddress() + "/ws"
}

// QRPNG encodes the pairing URL as a PNG image of the given pixel size.
func (c Config) QRPNG(size int) ([]byte, error) {
	png, err := qrcode.Encode(c.URL(), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode pairing qr: %w", err)
	}
	return png, nil
}
