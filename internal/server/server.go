package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dshills/keycast/internal/input/chord"
	"github.com/dshills/keycast/internal/shortcut"
)

// Shortcuts is the read surface the server needs from the collection.
type Shortcuts interface {
	List() ([]shortcut.Shortcut, error)
}

// Player executes a shortcut sequence on the host.
type Player interface {
	Play(sequence []string) error
}

// Logger is the minimal logging surface the server needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// DevicesFunc is notified with the connected-device list whenever a
// companion registers or disconnects.
type DevicesFunc func(devices []Device)

// Server accepts companion WebSocket connections.
type Server struct {
	shortcuts Shortcuts
	player    Player
	keys      *chord.Bridge
	log       Logger
	onDevices DevicesFunc

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
	devices  map[string]Device
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKeyBridge routes companion key_event messages into the given bridge,
// letting a paired device act as the capture engine's key source.
func WithKeyBridge(b *chord.Bridge) ServerOption {
	return func(s *Server) {
		s.keys = b
	}
}

// WithDevicesFunc registers the connected-device observer.
func WithDevicesFunc(fn DevicesFunc) ServerOption {
	return func(s *Server) {
		s.onDevices = fn
	}
}

// New creates a server over the given collection and player.
func New(shortcuts Shortcuts, player Player, opts ...ServerOption) *Server {
	s := &Server{
		shortcuts: shortcuts,
		player:    player,
		log:       nopLogger{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
		devices:  make(map[string]Device),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler exposing /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("companion server listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("companion server: %w", err)
	}
}

// Broadcast pushes the shortcut list to every connected session. Wired to
// the store's change notification.
func (s *Server) Broadcast(shortcuts []shortcut.Shortcut) {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		if err := sess.writeJSON(shortcuts); err != nil {
			s.log.Debug("broadcast to %s failed: %v", sess.id, err)
		}
	}
}

// Devices returns the currently registered companions.
func (s *Server) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d)
	}
	return out
}

// handleWS upgrades the connection and runs the session read loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade: %v", err)
		return
	}

	sess := newSession(uuid.NewString(), conn)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Debug("session %s connected from %s", sess.id, r.RemoteAddr)
	s.readLoop(sess)
	s.dropSession(sess)
}

// readLoop processes messages until the connection fails or closes.
func (s *Server) readLoop(sess *session) {
	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("session %s read: %v", sess.id, err)
			}
			return
		}

		var base baseMsg
		if err := json.Unmarshal(data, &base); err != nil {
			s.log.Debug("session %s sent unparseable message", sess.id)
			continue
		}

		switch base.Type {
		case "device_info":
			s.handleDeviceInfo(sess, data)
		case "execute_shortcut":
			s.handleExecute(sess, data)
		case "key_event":
			s.handleKeyEvent(sess, data)
		default:
			s.log.Debug("session %s sent unknown message type %q", sess.id, base.Type)
		}
	}
}

// handleDeviceInfo registers the companion and replies with the current
// shortcut list so a freshly paired device is immediately in sync.
func (s *Server) handleDeviceInfo(sess *session, data []byte) {
	var msg deviceInfoMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.DeviceName == "" {
		return
	}

	sess.setDevice(msg.DeviceName)

	s.mu.Lock()
	s.devices[msg.DeviceName] = Device{Name: msg.DeviceName, Connected: true}
	s.mu.Unlock()

	s.log.Info("device connected: %s", msg.DeviceName)
	s.notifyDevices()

	shortcuts, err := s.shortcuts.List()
	if err != nil {
		s.log.Error("list shortcuts for %s: %v", msg.DeviceName, err)
		return
	}
	if err := sess.writeJSON(shortcuts); err != nil {
		s.log.Debug("initial push to %s failed: %v", sess.id, err)
	}
}

// handleExecute plays the identified shortcut without blocking the read loop.
func (s *Server) handleExecute(sess *session, data []byte) {
	var msg executeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	shortcuts, err := s.shortcuts.List()
	if err != nil {
		s.log.Error("list shortcuts: %v", err)
		return
	}

	for _, sc := range shortcuts {
		if sc.ID == msg.ShortcutID {
			seq := sc.Sequence
			go func() {
				if err := s.player.Play(seq); err != nil {
					s.log.Error("play shortcut %d: %v", msg.ShortcutID, err)
				}
			}()
			return
		}
	}
	s.log.Debug("session %s asked for unknown shortcut %d", sess.id, msg.ShortcutID)
}

// handleKeyEvent forwards a companion key transition to the capture engine.
// Dropped when no bridge is wired or no capture surface is listening.
func (s *Server) handleKeyEvent(sess *session, data []byte) {
	if s.keys == nil {
		return
	}
	var msg keyEventMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Key == "" {
		return
	}
	s.keys.Emit(chord.KeyEvent{Key: msg.Key, Down: msg.Down, Repeat: msg.Repeat})
}

// dropSession removes the session and deregisters its device.
func (s *Server) dropSession(sess *session) {
	_ = sess.conn.Close()

	name := sess.deviceName()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	if name != "" {
		delete(s.devices, name)
	}
	s.mu.Unlock()

	if name != "" {
		s.log.Info("device disconnected: %s", name)
		s.notifyDevices()
	}
}

// notifyDevices pushes the device list to the registered observer.
func (s *Server) notifyDevices() {
	if s.onDevices != nil {
		s.onDevices(s.Devices())
	}
}
