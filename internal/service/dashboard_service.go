package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/observability"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

const dashboardTracerName = "github.com/noah-isme/edgylearn-api/internal/service/dashboard"

// dashboardRecorder is shared by the role dashboard services: it traces
// actions, counts them and announces applied changes.
type dashboardRecorder struct {
	events DashboardEvents
	tracer trace.Tracer
	logger zerolog.Logger
}

func newDashboardRecorder(events DashboardEvents, logger zerolog.Logger) dashboardRecorder {
	return dashboardRecorder{
		events: events,
		tracer: otel.Tracer(dashboardTracerName),
		logger: logger,
	}
}

func (r dashboardRecorder) start(ctx context.Context, sess *session.Session, action string, id int64) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "dashboard."+action, trace.WithAttributes(
		attribute.String("session.id", sess.ID),
		attribute.String("session.role", string(sess.Role())),
		attribute.Int64("record.id", id),
	))
}

func (r dashboardRecorder) finish(ctx context.Context, span trace.Span, sess *session.Session, action string, id int64, found, applied bool) {
	defer span.End()
	span.SetAttributes(attribute.Bool("record.found", found), attribute.Bool("action.applied", applied))

	observability.DashboardActions().WithLabelValues(string(sess.Role()), action, boolLabel(applied)).Inc()

	logger := r.logger.With().
		Str("session_id", sess.ID).
		Str("action", action).
		Int64("record_id", id).
		Logger()
	if !found {
		logger.Debug().Msg("dashboard action ignored stale id")
		return
	}
	if !applied {
		logger.Debug().Msg("dashboard action left state unchanged")
		return
	}

	sess.MarkChanged()
	if r.events != nil {
		r.events.Publish(ctx, sess, "action:"+action)
	}
	logger.Info().Msg("dashboard action applied")
}

// SessionHooks wires session lifecycle and liveness ticks into metrics and the
// dashboard event stream.
func SessionHooks(events DashboardEvents, logger zerolog.Logger) session.Hooks {
	log := logger.With().Str("component", "liveness").Logger()
	return session.Hooks{
		OnOpen: func(*session.Session) {
			observability.SessionsActive().Inc()
		},
		OnClose: func(sess *session.Session) {
			observability.SessionsActive().Dec()
			if events != nil {
				events.Close(sess.ID)
			}
		},
		OnTick: func(sess *session.Session, changed bool) {
			observability.LivenessTicks().WithLabelValues(string(sess.Role()), boolLabel(changed)).Inc()
			if !changed {
				return
			}
			log.Debug().Str("session_id", sess.ID).Msg("liveness tick changed dashboard")
			if events != nil {
				events.Publish(context.Background(), sess, "liveness")
			}
		},
	}
}

func adminBoard(sess *session.Session) (*dashboard.Admin, error) {
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	board, ok := sess.Admin()
	if !ok {
		return nil, ErrWrongRole
	}
	return board, nil
}

func teacherBoard(sess *session.Session) (*dashboard.Teacher, error) {
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	board, ok := sess.Teacher()
	if !ok {
		return nil, ErrWrongRole
	}
	return board, nil
}

func studentBoard(sess *session.Session) (*dashboard.Student, error) {
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	board, ok := sess.Student()
	if !ok {
		return nil, ErrWrongRole
	}
	return board, nil
}

// recordOf returns the post-action record, or nil for a stale id.
func recordOf[T any](change dashboard.Change[T]) interface{} {
	if !change.Found {
		return nil
	}
	return change.After
}
