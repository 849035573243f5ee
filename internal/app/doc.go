// Package app wires the daemon together: configuration, logging, the
// shortcut store, the capture engine, pairing, and the companion server.
package app
