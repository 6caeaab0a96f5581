package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

// CreationService validates the creation forms and builds the new records.
// On success the record is handed to onCreated before being returned; on
// failure a *FormError is returned and onCreated is not called.
type CreationService interface {
	SubmitUser(ctx context.Context, req dto.UserFormRequest, onCreated func(models.ManagedUser)) (models.ManagedUser, error)
	SubmitCourse(ctx context.Context, req dto.CourseFormRequest, editing *models.TeacherCourse, onCreated func(models.TeacherCourse)) (models.TeacherCourse, error)
}

type creationService struct {
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	ids        *dashboard.IDGenerator
	now        func() time.Time
	bcryptCost int
	logger     zerolog.Logger
}

// CreationOption customises the creation service.
type CreationOption func(*creationService)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) CreationOption {
	return func(s *creationService) {
		s.bcryptCost = cost
	}
}

// WithClock overrides the clock used for join dates and update stamps.
func WithClock(now func() time.Time) CreationOption {
	return func(s *creationService) {
		s.now = now
	}
}

// NewCreationService constructs the creation service.
func NewCreationService(validate *validator.Validate, ids *dashboard.IDGenerator, logger zerolog.Logger, opts ...CreationOption) CreationService {
	svc := &creationService{
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		ids:        ids,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.With().Str("component", "creation_service").Logger(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.ids == nil {
		svc.ids = dashboard.NewIDGenerator(svc.now)
	}
	return svc
}

func (s *creationService) SubmitUser(ctx context.Context, req dto.UserFormRequest, onCreated func(models.ManagedUser)) (models.ManagedUser, error) {
	clean := dto.UserFormRequest{
		Name:     s.cleanText(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     strings.ToLower(strings.TrimSpace(req.Role)),
	}
	// Whitespace only counts as blank. Otherwise the password is kept as typed.
	if strings.TrimSpace(clean.Password) == "" {
		clean.Password = ""
	}
	if err := s.validator.StructCtx(ctx, clean); err != nil {
		return models.ManagedUser{}, formErrorFrom(err)
	}

	role := models.RoleStudent
	if clean.Role != "" {
		parsed, ok := models.ParseRole(clean.Role)
		if !ok {
			return models.ManagedUser{}, &FormError{Field: "role", Category: FormRequired, Message: msgRequiredFields}
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(clean.Password), s.bcryptCost)
	if err != nil {
		return models.ManagedUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.ManagedUser{
		ID:           s.ids.Next(),
		Name:         clean.Name,
		Email:        clean.Email,
		Role:         role,
		JoinDate:     s.now().Format("2006-01-02"),
		Status:       models.UserStatusActive,
		PasswordHash: string(hash),
	}

	if onCreated != nil {
		onCreated(user)
	}
	s.logger.Info().Int64("user_id", user.ID).Str("role", string(role)).Msg("user created")
	return user, nil
}

func (s *creationService) SubmitCourse(ctx context.Context, req dto.CourseFormRequest, editing *models.TeacherCourse, onCreated func(models.TeacherCourse)) (models.TeacherCourse, error) {
	clean := dto.CourseFormRequest{
		Title:       s.cleanText(req.Title),
		Description: s.cleanText(req.Description),
		Category:    s.cleanText(req.Category),
		Difficulty:  strings.TrimSpace(req.Difficulty),
		Duration:    s.cleanText(req.Duration),
		Modules:     req.Modules,
	}
	if err := s.validator.StructCtx(ctx, clean); err != nil {
		return models.TeacherCourse{}, formErrorFrom(err)
	}

	level, ok := models.ParseCourseLevel(clean.Difficulty)
	if !ok {
		level = models.LevelBeginner
	}
	modules := clean.Modules
	if modules < 1 {
		modules = 1
	}

	course := models.TeacherCourse{
		Title:       clean.Title,
		Description: clean.Description,
		Category:    clean.Category,
		Difficulty:  level,
		Duration:    clean.Duration,
		Modules:     modules,
		LastUpdate:  s.now(),
	}

	if editing != nil {
		course.ID = editing.ID
		course.Status = editing.Status
		course.Progress = editing.Progress
		course.Students = editing.Students
		course.Rating = editing.Rating
	} else {
		course.ID = s.ids.Next()
		course.Status = models.CourseStatusDraft
	}

	if onCreated != nil {
		onCreated(course)
	}
	s.logger.Info().Int64("course_id", course.ID).Bool("edit", editing != nil).Msg("course saved")
	return course, nil
}

// cleanText strips markup and surrounding blanks. Entities escaped by the
// sanitizer are decoded again so plain text round-trips unchanged.
func (s *creationService) cleanText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}
