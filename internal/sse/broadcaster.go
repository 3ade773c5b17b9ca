package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/champguess/internal/model"
)

// Broadcaster publishes game events to the hub of the event's channel
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends the event as JSON to everyone watching its channel.
// Channels nobody is watching are skipped.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.ChannelID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("channel", event.ChannelID),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
