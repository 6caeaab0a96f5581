package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

// StudentAction is the response of a student dashboard action.
type StudentAction = dto.ActionResponse[dashboard.StudentSnapshot]

// StudentDashboardService drives the student dashboard of a session.
type StudentDashboardService interface {
	Snapshot(ctx context.Context, sess *session.Session) (dashboard.StudentSnapshot, error)
	Continue(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error)
	ToggleBookmark(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error)
	ToggleLike(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error)
	Enroll(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error)
}

type studentDashboardService struct {
	recorder dashboardRecorder
}

// NewStudentDashboardService constructs the student dashboard service.
func NewStudentDashboardService(events DashboardEvents, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		recorder: newDashboardRecorder(events, logger.With().Str("component", "student_dashboard_service").Logger()),
	}
}

func (s *studentDashboardService) Snapshot(ctx context.Context, sess *session.Session) (dashboard.StudentSnapshot, error) {
	board, err := studentBoard(sess)
	if err != nil {
		return dashboard.StudentSnapshot{}, err
	}
	return board.Snapshot(), nil
}

func (s *studentDashboardService) Continue(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error) {
	return s.act(ctx, sess, "continue", courseID, func(board *dashboard.Student) (interface{}, bool, bool) {
		change := board.Continue(courseID)
		return recordOf(change), change.Found, change.Applied
	})
}

func (s *studentDashboardService) ToggleBookmark(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error) {
	return s.act(ctx, sess, "toggle_bookmark", courseID, func(board *dashboard.Student) (interface{}, bool, bool) {
		change := board.ToggleBookmark(courseID)
		return recordOf(change), change.Found, change.Applied
	})
}

func (s *studentDashboardService) ToggleLike(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error) {
	return s.act(ctx, sess, "toggle_like", courseID, func(board *dashboard.Student) (interface{}, bool, bool) {
		change := board.ToggleLike(courseID)
		return recordOf(change), change.Found, change.Applied
	})
}

func (s *studentDashboardService) Enroll(ctx context.Context, sess *session.Session, courseID int64) (StudentAction, error) {
	return s.act(ctx, sess, "enroll", courseID, func(board *dashboard.Student) (interface{}, bool, bool) {
		change := board.Enroll(courseID)
		return recordOf(change), change.Found, change.Applied
	})
}

func (s *studentDashboardService) act(ctx context.Context, sess *session.Session, action string, id int64, apply func(*dashboard.Student) (interface{}, bool, bool)) (StudentAction, error) {
	board, err := studentBoard(sess)
	if err != nil {
		return StudentAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, action, id)
	record, found, applied := apply(board)
	s.recorder.finish(ctx, span, sess, action, id, found, applied)

	return StudentAction{Applied: applied, Record: record, Dashboard: board.Snapshot()}, nil
}
