package server

import (
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dshills/keycast/internal/input/chord"
	"github.com/dshills/keycast/internal/shortcut"
)

// fixedShortcuts serves a static collection.
type fixedShortcuts struct {
	list []shortcut.Shortcut
}

func (f *fixedShortcuts) List() ([]shortcut.Shortcut, error) {
	return f.list, nil
}

// recordingPlayer records played sequences.
type recordingPlayer struct {
	mu     sync.Mutex
	played [][]string
	done   chan struct{}
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{done: make(chan struct{}, 4)}
}

func (p *recordingPlayer) Play(sequence []string) error {
	p.mu.Lock()
	p.played = append(p.played, sequence)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *recordingPlayer) sequences() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]string, len(p.played))
	copy(out, p.played)
	return out
}

func dialTest(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func readShortcuts(t *testing.T, conn *websocket.Conn) []shortcut.Shortcut {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []shortcut.Shortcut
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read shortcut list: %v", err)
	}
	return got
}

func TestDeviceInfoReceivesShortcutList(t *testing.T) {
	list := []shortcut.Shortcut{
		{ID: 1, Name: "One", Sequence: []string{"A"}},
		{ID: 2, Name: "Two", Sequence: []string{"Control+k", "r"}},
	}
	srv := New(&fixedShortcuts{list: list}, newRecordingPlayer())

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	if err := conn.WriteJSON(deviceInfoMsg{Type: "device_info", DeviceName: "phone"}); err != nil {
		t.Fatalf("send device_info: %v", err)
	}

	got := readShortcuts(t, conn)
	if !reflect.DeepEqual(got, list) {
		t.Errorf("initial list = %v, want %v", got, list)
	}
}

func TestDeviceRegistryTracksConnections(t *testing.T) {
	var (
		mu      sync.Mutex
		updates [][]Device
	)
	srv := New(&fixedShortcuts{}, newRecordingPlayer(),
		WithDevicesFunc(func(devices []Device) {
			mu.Lock()
			updates = append(updates, devices)
			mu.Unlock()
		}))

	conn, cleanup := dialTest(t, srv)

	conn.WriteJSON(deviceInfoMsg{Type: "device_info", DeviceName: "phone"})
	readShortcuts(t, conn)

	devices := srv.Devices()
	if len(devices) != 1 || devices[0].Name != "phone" || !devices[0].Connected {
		t.Errorf("Devices() = %v, want connected phone", devices)
	}

	cleanup()

	// Disconnect deregisters the device.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(srv.Devices()) == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.Devices(); len(got) != 0 {
		t.Errorf("Devices() after disconnect = %v, want empty", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(updates) < 2 {
		t.Errorf("device observer fired %d times, want register + deregister", len(updates))
	}
}

func TestExecuteShortcutPlaysSequence(t *testing.T) {
	list := []shortcut.Shortcut{{ID: 7, Name: "Run", Sequence: []string{"Control+r", "Enter"}}}
	player := newRecordingPlayer()
	srv := New(&fixedShortcuts{list: list}, player)

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	if err := conn.WriteJSON(executeMsg{Type: "execute_shortcut", ShortcutID: 7}); err != nil {
		t.Fatalf("send execute: %v", err)
	}

	select {
	case <-player.done:
	case <-time.After(2 * time.Second):
		t.Fatal("player never invoked")
	}

	got := player.sequences()
	if len(got) != 1 || !reflect.DeepEqual(got[0], list[0].Sequence) {
		t.Errorf("played = %v, want [%v]", got, list[0].Sequence)
	}
}

func TestExecuteUnknownShortcutIsIgnored(t *testing.T) {
	player := newRecordingPlayer()
	srv := New(&fixedShortcuts{}, player)

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	conn.WriteJSON(executeMsg{Type: "execute_shortcut", ShortcutID: 404})

	select {
	case <-player.done:
		t.Fatal("player invoked for unknown shortcut")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestKeyEventsFeedBridge(t *testing.T) {
	bridge := chord.NewBridge()
	var (
		mu   sync.Mutex
		seen []chord.KeyEvent
	)
	bridge.Attach(func(ev chord.KeyEvent) {
		mu.Lock()
		seen = append(seen, ev)
		mu.Unlock()
	})

	srv := New(&fixedShortcuts{}, newRecordingPlayer(), WithKeyBridge(bridge))

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	conn.WriteJSON(keyEventMsg{Type: "key_event", Key: "Control", Down: true})
	conn.WriteJSON(keyEventMsg{Type: "key_event", Key: "k", Down: true})
	conn.WriteJSON(keyEventMsg{Type: "key_event", Key: "k", Down: false})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n == 3 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []chord.KeyEvent{
		{Key: "Control", Down: true},
		{Key: "k", Down: true},
		{Key: "k", Down: false},
	}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("bridge events = %v, want %v", seen, want)
	}
}

func TestBroadcastReachesRegisteredSessions(t *testing.T) {
	srv := New(&fixedShortcuts{}, newRecordingPlayer())

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	conn.WriteJSON(deviceInfoMsg{Type: "device_info", DeviceName: "phone"})
	readShortcuts(t, conn) // initial push

	update := []shortcut.Shortcut{{ID: 3, Name: "New", Sequence: []string{"X"}}}
	srv.Broadcast(update)

	got := readShortcuts(t, conn)
	if !reflect.DeepEqual(got, update) {
		t.Errorf("broadcast list = %v, want %v", got, update)
	}
}

func TestUnknownMessageTypeIsIgnored(t *testing.T) {
	list := []shortcut.Shortcut{{ID: 1, Name: "One", Sequence: []string{"A"}}}
	srv := New(&fixedShortcuts{list: list}, newRecordingPlayer())

	conn, cleanup := dialTest(t, srv)
	defer cleanup()

	conn.WriteJSON(map[string]any{"type": "mystery"})

	// The connection must stay healthy.
	conn.WriteJSON(deviceInfoMsg{Type: "device_info", DeviceName: "phone"})
	if got := readShortcuts(t, conn); len(got) != 1 {
		t.Errorf("list after unknown message = %v, want the collection", got)
	}
}
