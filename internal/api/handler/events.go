package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/champguess/internal/sse"
)

// EventsHandler streams channel events to observers
type EventsHandler struct {
	hubs *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubs *sse.HubManager) *EventsHandler {
	return &EventsHandler{hubs: hubs}
}

// Stream handles GET /api/v1/channels/{channel}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	channel := mux.Vars(r)["channel"]

	subscriber := r.URL.Query().Get("user")
	if subscriber == "" {
		subscriber = r.RemoteAddr
	}

	sse.ServeSSE(w, r, h.hubs.GetOrCreateHub(channel), subscriber)
}
