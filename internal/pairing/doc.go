// Package pairing provides what a companion device needs to find and
// connect to this daemon: the local network address, the WebSocket port, a
// QR-encodable pairing payload, and a UDP responder that answers discovery
// probes on the local network.
package pairing
