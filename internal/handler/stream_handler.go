package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

const (
	snapshotSource = "snapshot"
	socketSession  = "stream_session"
	socketLogger   = "stream_logger"
)

// StreamHandler pushes dashboard snapshots of the caller's session over SSE
// or a websocket.
type StreamHandler struct {
	events    service.DashboardEvents
	logger    zerolog.Logger
	keepAlive time.Duration
}

// NewStreamHandler constructs a stream handler.
func NewStreamHandler(events service.DashboardEvents, logger zerolog.Logger, keepAlive time.Duration) *StreamHandler {
	return &StreamHandler{
		events:    events,
		logger:    logger.With().Str("component", "stream_handler").Logger(),
		keepAlive: keepAlive,
	}
}

// Register binds the stream routes.
func (h *StreamHandler) Register(router fiber.Router) {
	router.Get("/stream", h.stream)

	router.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		sess, err := sessionFrom(c)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "session required")
		}
		c.Locals(socketSession, sess)
		c.Locals(socketLogger, requestLogger(h.logger, c).With().Str("session_id", sess.ID).Logger())
		return c.Next()
	})
	router.Get("/ws", websocket.New(h.socket))
}

// stream writes the current dashboard first, then one event per change until
// the client leaves or the session closes.
func (h *StreamHandler) stream(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "session required")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(requestContext(c))

	events, cleanup := h.events.Subscribe(sess.ID)
	initial := dto.DashboardEvent{
		SessionID: sess.ID,
		Role:      sess.Role(),
		Source:    snapshotSource,
		Version:   sess.Version(),
		Dashboard: sess.Board.View(),
	}

	keepAliveInterval := h.keepAlive
	if keepAliveInterval <= 0 {
		keepAliveInterval = 30 * time.Second
	}

	logger := requestLogger(h.logger, c).With().Str("session_id", sess.ID).Logger()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cleanup()
			cancel()
		}()

		if err := writeDashboardEvent(w, initial); err != nil {
			logger.Debug().Err(err).Msg("failed to write dashboard snapshot")
			return
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := writeDashboardEvent(w, event); err != nil {
					logger.Debug().Err(err).Msg("failed to write dashboard event")
					return
				}
			case <-ticker.C:
				if err := writeKeepAlive(w); err != nil {
					logger.Debug().Err(err).Msg("failed to write dashboard keepalive")
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})

	return nil
}

// socket mirrors stream over a websocket. Each frame is one JSON event and the
// connection closes normally once the session ends.
func (h *StreamHandler) socket(conn *websocket.Conn) {
	sess, ok := conn.Locals(socketSession).(*session.Session)
	if !ok || sess == nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session required"))
		_ = conn.Close()
		return
	}
	logger, ok := conn.Locals(socketLogger).(zerolog.Logger)
	if !ok {
		logger = h.logger
	}

	events, cleanup := h.events.Subscribe(sess.ID)
	defer cleanup()

	// The client never sends data; reading only detects when it goes away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Info().Msg("dashboard websocket connected")
	defer logger.Info().Msg("dashboard websocket disconnected")

	initial := dto.DashboardEvent{
		SessionID: sess.ID,
		Role:      sess.Role(),
		Source:    snapshotSource,
		Version:   sess.Version(),
		Dashboard: sess.Board.View(),
	}
	if err := conn.WriteJSON(initial); err != nil {
		logger.Debug().Err(err).Msg("failed to write dashboard snapshot")
		return
	}

	keepAliveInterval := h.keepAlive
	if keepAliveInterval <= 0 {
		keepAliveInterval = 30 * time.Second
	}
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				_ = conn.Close()
				<-gone
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				logger.Debug().Err(err).Msg("failed to write dashboard event")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				logger.Debug().Err(err).Msg("failed to ping dashboard websocket")
				return
			}
		case <-gone:
			return
		}
	}
}

func writeDashboardEvent(w *bufio.Writer, event dto.DashboardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "id: %d\nevent: dashboard\n", event.Version); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}
