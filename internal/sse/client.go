package sse

import (
	"net/http"
	"time"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents a connected SSE client
type Client struct {
	hub         *Hub
	subscriber  string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, subscriber string) *Client {
	return &Client{
		hub:         hub,
		subscriber:  subscriber,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams the hub's events to the client until either side goes away
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, subscriber string) {
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, subscriber)
	if !hub.Register(client) {
		http.Error(w, "channel feed closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(client)

	// Send initial connection event
	_, _ = w.Write(formatSSEMessage("connected", `{"status":"connected"}`))
	if err := rc.Flush(); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			_ = rc.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			_ = rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
