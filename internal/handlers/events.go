package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/raziqtech/portal-api/internal/bus"
)

// EventHandler streams change notifications to open views.
type EventHandler struct {
	bus *bus.Bus
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(b *bus.Bus) *EventHandler {
	return &EventHandler{bus: b}
}

// Stream sends store change events over SSE until the client disconnects.
// On each event the client re-fetches the collection it cares about; the
// event itself carries only the entity kind, action and id.
func (h *EventHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events := h.bus.Subscribe(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("change", event)
		return true
	})
}
