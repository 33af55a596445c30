package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/watch"
)

type WatchHandler struct {
	hub *watch.Hub
}

func NewWatchHandler(hub *watch.Hub) *WatchHandler {
	return &WatchHandler{hub: hub}
}

// WatchProjects handles GET /api/projects/watch as a server-sent event
// stream. Every committed write pushes the caller's full visible project
// list; a snapshot that failed to compute is sent as an error event.
func (h *WatchHandler) WatchProjects(c *gin.Context) {
	snapshots, cancel := h.hub.Subscribe(auth.EmailFromContext(c))
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			if snapshot.Err != nil {
				c.SSEvent("error", gin.H{"error": snapshot.Err.Error()})
				return true
			}
			c.SSEvent("projects", snapshot.Projects)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
