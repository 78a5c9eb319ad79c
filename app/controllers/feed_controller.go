package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shashiranjanraj/stockroom/pkg/ctx"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/sse"
	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

// FeedController streams inventory events over WebSocket or Server-Sent
// Events. Both transports carry the same {"event","data"} payloads.
type FeedController struct {
	hub *ws.Hub
}

// NewFeedController subscribes hub to every event on bus.
func NewFeedController(hub *ws.Hub, bus *event.Bus) *FeedController {
	bus.Listen(event.Wildcard, func(e event.Event) {
		payload, err := json.Marshal(e)
		if err != nil {
			logger.Error("feed: encode event", "event", e.Name, "error", err)
			return
		}
		if !hub.Broadcast(payload) {
			logger.Warn("feed: broadcast queue full, event dropped", "event", e.Name)
		}
	})
	return &FeedController{hub: hub}
}

// Connect handles GET /ws/inventory.
func (f *FeedController) Connect(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, f.hub)
}

// Stream handles GET /sse/inventory. Each payload is sent as an event named
// after the change, e.g. "event: product.created".
func (f *FeedController) Stream(c *ctx.Context) {
	msgs, ok := f.hub.Subscribe(c.Context())
	if !ok {
		c.Error(http.StatusServiceUnavailable, "Feed unavailable")
		return
	}

	stream, err := sse.New(c.W)
	if err != nil {
		c.Logger().Warn("feed: open event stream", "error", err)
		return
	}

	heartbeat := time.NewTicker(sse.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Context().Done():
			return
		case msg, open := <-msgs:
			if !open {
				return
			}
			var head struct {
				Event string `json:"event"`
			}
			if err := json.Unmarshal(msg, &head); err != nil || head.Event == "" {
				c.Logger().Warn("feed: skipping undecodable message", "error", err, "bytes", len(msg))
				continue
			}
			if err := stream.Event(head.Event, msg); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := stream.Comment("ping"); err != nil {
				return
			}
		}
	}
}
