package handler

import (
	"bufio"
	"fmt"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// RealtimeHandler streams leaderboard and achievement events to clients
// over server-sent events. Delivery is at-most-once with no replay: a
// client that reconnects only sees events pushed after the reconnect.
type RealtimeHandler struct {
	eventBus domain.EventBus
}

// NewRealtimeHandler creates a new RealtimeHandler instance.
func NewRealtimeHandler(eventBus domain.EventBus) *RealtimeHandler {
	return &RealtimeHandler{eventBus: eventBus}
}

// Stream handles GET /api/events
func (h *RealtimeHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events := make(chan sseEvent, 16)
	unsubscribers := make([]func(), 0, 2)
	for _, event := range []string{domain.EventLeaderboardUpdate, domain.EventAchievementUnlocked} {
		name := event
		unsubscribe, err := h.eventBus.Subscribe(name, func(payload []byte) {
			select {
			case events <- sseEvent{name: name, payload: payload}:
			default:
				// A slow client drops events rather than blocking the bus.
			}
		})
		if err != nil {
			for _, u := range unsubscribers {
				u()
			}
			return domain.NewInternalError("Failed to subscribe to event stream", err)
		}
		unsubscribers = append(unsubscribers, unsubscribe)
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			for _, unsubscribe := range unsubscribers {
				unsubscribe()
			}
		}()

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case event := <-events:
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.name, event.payload)
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}
			if err := w.Flush(); err != nil {
				logger.Get().Debug("Event stream client disconnected", zap.Error(err))
				return
			}
		}
	}))

	return nil
}

type sseEvent struct {
	name    string
	payload []byte
}
