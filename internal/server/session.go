package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a slow companion can block a push.
const writeWait = 3 * time.Second

// session wraps one companion connection. gorilla/websocket allows a
// single concurrent writer, so all writes go through the session mutex.
type session struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	device string // set once device_info arrives
}

func newSession(id string, conn *websocket.Conn) *session {
	return &session{id: id, conn: conn}
}

// writeJSON sends one JSON message with a write deadline.
func (s *session) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

// setDevice records the companion's display name.
func (s *session) setDevice(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.device = name
}

// deviceName returns the registered name, empty before device_info.
func (s *session) deviceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}
