package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Hub manages SSE clients watching a single channel
type Hub struct {
	channelID string
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a channel
func NewHub(channelID string, logger *slog.Logger) *Hub {
	return &Hub{
		channelID:  channelID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("channel", channelID)),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("subscriber", client.subscriber),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.String("subscriber", client.subscriber),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			sent := len(h.clients) - dropped
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse broadcast partial failure",
					slog.Int("sent", sent),
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub; it reports false if the hub has closed
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Every data line gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// splitLines splits on LF, dropping CRs and a single trailing newline
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager manages hubs for all channels
type HubManager struct {
	hubs   map[string]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[string]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a channel, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(channelID string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[channelID]; ok {
		return hub
	}

	hub := NewHub(channelID, m.logger)
	m.hubs[channelID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a channel, or nil if it doesn't exist
func (m *HubManager) GetHub(channelID string) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[channelID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[channelID]; ok {
		hub.Close()
		delete(m.hubs, channelID)
		m.logger.Info("sse hub removed", slog.String("channel", channelID))
	}
}

// CleanupEmptyHubs removes hubs with no clients and returns how many were removed
func (m *HubManager) CleanupEmptyHubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
	return removed
}

// Len returns the number of live hubs
func (m *HubManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hubs)
}

// CloseAll closes every hub, ending all open streams
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
