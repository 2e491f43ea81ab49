package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clinic-desk-backend/internal/service"
	"clinic-desk-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

const sseKeepAliveInterval = 30 * time.Second

// EventHandler streams lifecycle events to waiting-room displays over
// Server-Sent Events.
type EventHandler struct {
	hub *service.EventHub
	log *logrus.Logger
}

func NewEventHandler(hub *service.EventHub, log *logrus.Logger) *EventHandler {
	return &EventHandler{hub: hub, log: log}
}

func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusInternalServerError, "Streaming is not supported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub, backlog := h.hub.Subscribe()
	defer sub.Close()

	for _, event := range backlog {
		h.writeEvent(w, event)
	}
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-sub.Events():
			h.writeEvent(w, event)
			flusher.Flush()
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

func (h *EventHandler) writeEvent(w http.ResponseWriter, event service.HubEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		h.log.Warnf("Failed to marshal SSE event %s: %+v", event.Topic, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, body)
}
