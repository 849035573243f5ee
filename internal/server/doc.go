// Package server exposes the shortcut collection to paired companion
// devices over WebSocket.
//
// A companion introduces itself with a device_info message, after which it
// receives the current shortcut list and every subsequent change. It can
// ask the daemon to execute a shortcut by id, or stream its own
// key-down/key-up events into the capture engine to act as the key source.
package server
