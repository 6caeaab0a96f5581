package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

// AdminAction is the response of an admin dashboard action.
type AdminAction = dto.ActionResponse[dashboard.AdminSnapshot]

// AdminDashboardService drives the admin dashboard of a session.
type AdminDashboardService interface {
	Snapshot(ctx context.Context, sess *session.Session) (dashboard.AdminSnapshot, error)
	Approve(ctx context.Context, sess *session.Session, courseID int64) (AdminAction, error)
	Reject(ctx context.Context, sess *session.Session, courseID int64) (AdminAction, error)
	Review(ctx context.Context, sess *session.Session, courseID int64) (models.PendingCourse, error)
	Promote(ctx context.Context, sess *session.Session, userID int64) (AdminAction, error)
	ToggleSuspend(ctx context.Context, sess *session.Session, userID int64) (AdminAction, error)
	CreateUser(ctx context.Context, sess *session.Session, req dto.UserFormRequest) (AdminAction, error)
}

type adminDashboardService struct {
	forms    CreationService
	recorder dashboardRecorder
}

// NewAdminDashboardService constructs the admin dashboard service.
func NewAdminDashboardService(forms CreationService, events DashboardEvents, logger zerolog.Logger) AdminDashboardService {
	return &adminDashboardService{
		forms:    forms,
		recorder: newDashboardRecorder(events, logger.With().Str("component", "admin_dashboard_service").Logger()),
	}
}

func (s *adminDashboardService) Snapshot(ctx context.Context, sess *session.Session) (dashboard.AdminSnapshot, error) {
	board, err := adminBoard(sess)
	if err != nil {
		return dashboard.AdminSnapshot{}, err
	}
	return board.Snapshot(), nil
}

func (s *adminDashboardService) Approve(ctx context.Context, sess *session.Session, courseID int64) (AdminAction, error) {
	return s.courseAction(ctx, sess, "approve", courseID, (*dashboard.Admin).Approve)
}

func (s *adminDashboardService) Reject(ctx context.Context, sess *session.Session, courseID int64) (AdminAction, error) {
	return s.courseAction(ctx, sess, "reject", courseID, (*dashboard.Admin).Reject)
}

func (s *adminDashboardService) courseAction(ctx context.Context, sess *session.Session, action string, id int64, apply func(*dashboard.Admin, int64) dashboard.Change[models.PendingCourse]) (AdminAction, error) {
	board, err := adminBoard(sess)
	if err != nil {
		return AdminAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, action, id)
	change := apply(board, id)
	s.recorder.finish(ctx, span, sess, action, id, change.Found, change.Applied)

	return AdminAction{Applied: change.Applied, Record: recordOf(change), Dashboard: board.Snapshot()}, nil
}

func (s *adminDashboardService) Review(ctx context.Context, sess *session.Session, courseID int64) (models.PendingCourse, error) {
	board, err := adminBoard(sess)
	if err != nil {
		return models.PendingCourse{}, err
	}

	course, ok := board.Review(courseID)
	if !ok {
		return models.PendingCourse{}, ErrCourseNotFound
	}
	return course, nil
}

func (s *adminDashboardService) Promote(ctx context.Context, sess *session.Session, userID int64) (AdminAction, error) {
	return s.userAction(ctx, sess, "promote", userID, (*dashboard.Admin).Promote)
}

func (s *adminDashboardService) ToggleSuspend(ctx context.Context, sess *session.Session, userID int64) (AdminAction, error) {
	return s.userAction(ctx, sess, "toggle_suspend", userID, (*dashboard.Admin).ToggleSuspend)
}

func (s *adminDashboardService) userAction(ctx context.Context, sess *session.Session, action string, id int64, apply func(*dashboard.Admin, int64) dashboard.Change[models.ManagedUser]) (AdminAction, error) {
	board, err := adminBoard(sess)
	if err != nil {
		return AdminAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, action, id)
	change := apply(board, id)
	s.recorder.finish(ctx, span, sess, action, id, change.Found, change.Applied)

	return AdminAction{Applied: change.Applied, Record: recordOf(change), Dashboard: board.Snapshot()}, nil
}

func (s *adminDashboardService) CreateUser(ctx context.Context, sess *session.Session, req dto.UserFormRequest) (AdminAction, error) {
	board, err := adminBoard(sess)
	if err != nil {
		return AdminAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, "create_user", 0)
	user, err := s.forms.SubmitUser(ctx, req, board.AddUser)
	if err != nil {
		span.RecordError(err)
		s.recorder.finish(ctx, span, sess, "create_user", 0, true, false)
		return AdminAction{}, err
	}
	s.recorder.finish(ctx, span, sess, "create_user", user.ID, true, true)

	return AdminAction{Applied: true, Record: user, Dashboard: board.Snapshot()}, nil
}
