package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

// TeacherAction is the response of a teacher dashboard action.
type TeacherAction = dto.ActionResponse[dashboard.TeacherSnapshot]

// TeacherDashboardService drives the teacher dashboard of a session.
type TeacherDashboardService interface {
	Snapshot(ctx context.Context, sess *session.Session) (dashboard.TeacherSnapshot, error)
	Course(ctx context.Context, sess *session.Session, courseID int64) (models.TeacherCourse, error)
	CreateCourse(ctx context.Context, sess *session.Session, req dto.CourseFormRequest) (TeacherAction, error)
	UpdateCourse(ctx context.Context, sess *session.Session, courseID int64, req dto.CourseFormRequest) (TeacherAction, error)
	Publish(ctx context.Context, sess *session.Session, courseID int64) (TeacherAction, error)
	Delete(ctx context.Context, sess *session.Session, courseID int64) (TeacherAction, error)
}

type teacherDashboardService struct {
	forms    CreationService
	recorder dashboardRecorder
}

// NewTeacherDashboardService constructs the teacher dashboard service.
func NewTeacherDashboardService(forms CreationService, events DashboardEvents, logger zerolog.Logger) TeacherDashboardService {
	return &teacherDashboardService{
		forms:    forms,
		recorder: newDashboardRecorder(events, logger.With().Str("component", "teacher_dashboard_service").Logger()),
	}
}

func (s *teacherDashboardService) Snapshot(ctx context.Context, sess *session.Session) (dashboard.TeacherSnapshot, error) {
	board, err := teacherBoard(sess)
	if err != nil {
		return dashboard.TeacherSnapshot{}, err
	}
	return board.Snapshot(), nil
}

func (s *teacherDashboardService) Course(ctx context.Context, sess *session.Session, courseID int64) (models.TeacherCourse, error) {
	board, err := teacherBoard(sess)
	if err != nil {
		return models.TeacherCourse{}, err
	}
	course, ok := board.Course(courseID)
	if !ok {
		return models.TeacherCourse{}, ErrCourseNotFound
	}
	return course, nil
}

func (s *teacherDashboardService) CreateCourse(ctx context.Context, sess *session.Session, req dto.CourseFormRequest) (TeacherAction, error) {
	board, err := teacherBoard(sess)
	if err != nil {
		return TeacherAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, "create_course", 0)
	course, err := s.forms.SubmitCourse(ctx, req, nil, board.AddCourse)
	if err != nil {
		span.RecordError(err)
		s.recorder.finish(ctx, span, sess, "create_course", 0, true, false)
		return TeacherAction{}, err
	}
	s.recorder.finish(ctx, span, sess, "create_course", course.ID, true, true)

	return TeacherAction{Applied: true, Record: course, Dashboard: board.Snapshot()}, nil
}

// UpdateCourse needs the current course to carry its status and counters
// over, so an unknown id is an error rather than a silent no-op.
func (s *teacherDashboardService) UpdateCourse(ctx context.Context, sess *session.Session, courseID int64, req dto.CourseFormRequest) (TeacherAction, error) {
	board, err := teacherBoard(sess)
	if err != nil {
		return TeacherAction{}, err
	}

	current, ok := board.Course(courseID)
	if !ok {
		return TeacherAction{}, ErrCourseNotFound
	}

	ctx, span := s.recorder.start(ctx, sess, "update_course", courseID)
	var change dashboard.Change[models.TeacherCourse]
	_, err = s.forms.SubmitCourse(ctx, req, &current, func(course models.TeacherCourse) {
		change = board.UpdateCourse(course)
	})
	if err != nil {
		span.RecordError(err)
		s.recorder.finish(ctx, span, sess, "update_course", courseID, true, false)
		return TeacherAction{}, err
	}
	s.recorder.finish(ctx, span, sess, "update_course", courseID, change.Found, change.Applied)

	return TeacherAction{Applied: change.Applied, Record: recordOf(change), Dashboard: board.Snapshot()}, nil
}

func (s *teacherDashboardService) Publish(ctx context.Context, sess *session.Session, courseID int64) (TeacherAction, error) {
	return s.courseAction(ctx, sess, "publish", courseID, (*dashboard.Teacher).Publish)
}

func (s *teacherDashboardService) Delete(ctx context.Context, sess *session.Session, courseID int64) (TeacherAction, error) {
	return s.courseAction(ctx, sess, "delete", courseID, (*dashboard.Teacher).Delete)
}

func (s *teacherDashboardService) courseAction(ctx context.Context, sess *session.Session, action string, id int64, apply func(*dashboard.Teacher, int64) dashboard.Change[models.TeacherCourse]) (TeacherAction, error) {
	board, err := teacherBoard(sess)
	if err != nil {
		return TeacherAction{}, err
	}

	ctx, span := s.recorder.start(ctx, sess, action, id)
	change := apply(board, id)
	s.recorder.finish(ctx, span, sess, action, id, change.Found, change.Applied)

	response := TeacherAction{Applied: change.Applied, Dashboard: board.Snapshot()}
	if action != "delete" {
		response.Record = recordOf(change)
	}
	return response, nil
}
