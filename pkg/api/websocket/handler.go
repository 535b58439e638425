package websocket

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/ports"
)

const (
	writeWait  = 10 * time.Second
	bufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(eventBus ports.EventBus, logger *zap.Logger) *Handler {
	return &Handler{
		eventBus: eventBus,
		logger:   logger,
	}
}

// HandleVideoStream streams catalog events to the client as JSON text frames.
// An optional ?id= query narrows the feed to one video plus catalog resets.
func (h *Handler) HandleVideoStream(c *gin.Context) {
	var filter *int64
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		filter = &id
	}

	// The request context ends when this handler returns, which is also
	// when the connection is torn down.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	eventChan := make(chan ports.Event, bufferSize)
	if err := h.eventBus.Subscribe(ctx, ports.TopicVideoEvents, h.forward(eventChan)); err != nil {
		h.logger.Error("failed to subscribe to events", zap.Error(err))
		c.Status(http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	// Drain client frames so close and ping are processed
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket connection closed", zap.String("client", c.ClientIP()))
			return
		case event := <-eventChan:
			if !matches(event, filter) {
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Warn("failed to write message", zap.Error(err))
				return
			}
		}
	}
}

// forward hands events to ch without blocking the bus
func (h *Handler) forward(ch chan<- ports.Event) ports.EventHandler {
	return func(ctx context.Context, event ports.Event) error {
		select {
		case ch <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
			h.logger.Warn("event channel full, dropping event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)))
		}
		return nil
	}
}

func matches(event ports.Event, filter *int64) bool {
	if filter == nil {
		return true
	}
	if event.Type == ports.EventTypeVideosReset {
		return true
	}
	return event.VideoID != nil && *event.VideoID == *filter
}
