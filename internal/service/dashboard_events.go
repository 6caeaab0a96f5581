package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

const dashboardEventBufferSize = 8

// DashboardEvents fans dashboard changes out to stream subscribers of the
// session and, when configured, to Redis and NATS.
type DashboardEvents interface {
	Publish(ctx context.Context, sess *session.Session, source string)
	Subscribe(sessionID string) (<-chan dto.DashboardEvent, func())
	// Close ends every subscription of the session.
	Close(sessionID string)
}

type dashboardEvents struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	broker       *dashboardBroker
}

type dashboardWireEvent struct {
	Event  dto.DashboardEvent `json:"event"`
	SentAt time.Time          `json:"sent_at"`
}

type dashboardBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan dto.DashboardEvent]struct{}
}

// NewDashboardEvents constructs the dashboard event fan-out. Nil clients
// disable the matching transport.
func NewDashboardEvents(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) DashboardEvents {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":dashboard"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".dashboard"
	}

	return &dashboardEvents{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "dashboard_events").Logger(),
		broker: &dashboardBroker{
			subscribers: make(map[string]map[chan dto.DashboardEvent]struct{}),
		},
	}
}

func (e *dashboardEvents) Publish(ctx context.Context, sess *session.Session, source string) {
	event := dto.DashboardEvent{
		SessionID: sess.ID,
		Role:      sess.Role(),
		Source:    source,
		Version:   sess.Version(),
		Dashboard: sess.Board.View(),
	}

	e.broker.broadcast(sess.ID, event)
	if err := e.publish(ctx, event); err != nil {
		e.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to publish dashboard event")
	}
}

func (e *dashboardEvents) Subscribe(sessionID string) (<-chan dto.DashboardEvent, func()) {
	channel := make(chan dto.DashboardEvent, dashboardEventBufferSize)
	e.broker.subscribe(sessionID, channel)

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			e.broker.unsubscribe(sessionID, channel)
		})
	}
	return channel, cleanup
}

func (e *dashboardEvents) Close(sessionID string) {
	e.broker.closeAll(sessionID)
}

func (e *dashboardEvents) publish(ctx context.Context, event dto.DashboardEvent) error {
	if (e.redis == nil || e.redisChannel == "") && (e.nats == nil || e.natsSubject == "") {
		return nil
	}

	payload, err := json.Marshal(dashboardWireEvent{Event: event, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	if e.redis != nil && e.redisChannel != "" {
		if err := e.redis.Publish(ctx, e.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if e.nats != nil && e.natsSubject != "" {
		if err := e.nats.Publish(e.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (b *dashboardBroker) subscribe(sessionID string, ch chan dto.DashboardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[sessionID]; !exists {
		b.subscribers[sessionID] = make(map[chan dto.DashboardEvent]struct{})
	}
	b.subscribers[sessionID][ch] = struct{}{}
}

func (b *dashboardBroker) unsubscribe(sessionID string, ch chan dto.DashboardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[sessionID]; ok {
		if _, present := subscribers[ch]; !present {
			return
		}
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, sessionID)
		}
	}
}

func (b *dashboardBroker) closeAll(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers[sessionID] {
		close(ch)
	}
	delete(b.subscribers, sessionID)
}

// broadcast drops the event for subscribers whose buffer is full. The next
// event carries the full dashboard, so nothing is lost for good.
func (b *dashboardBroker) broadcast(sessionID string, event dto.DashboardEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[sessionID] {
		select {
		case ch <- event:
		default:
		}
	}
}
