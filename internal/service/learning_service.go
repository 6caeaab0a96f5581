package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/seed"
)

// LearningService serves the read-only learning data: landing content,
// learning paths and per-user progress.
type LearningService interface {
	Landing(ctx context.Context) dto.LandingResponse
	LearningPaths(ctx context.Context, recommendedOnly bool) ([]models.LearningPath, error)
	Progress(ctx context.Context, userID string) (dto.ProgressResponse, error)
	User(ctx context.Context, id string) (models.User, error)
}

type learningService struct {
	dataset  *seed.Dataset
	progress repository.ProgressRepository
	users    repository.UserRepository
	logger   zerolog.Logger
}

// NewLearningService constructs the learning service.
func NewLearningService(dataset *seed.Dataset, progress repository.ProgressRepository, users repository.UserRepository, logger zerolog.Logger) LearningService {
	return &learningService{
		dataset:  dataset,
		progress: progress,
		users:    users,
		logger:   logger.With().Str("component", "learning_service").Logger(),
	}
}

func (s *learningService) Landing(ctx context.Context) dto.LandingResponse {
	return dto.LandingResponse{
		Features:     s.dataset.Landing.Features,
		Testimonials: s.dataset.Landing.Testimonials,
		DemoAccounts: s.dataset.AccountEmails(),
	}
}

func (s *learningService) LearningPaths(ctx context.Context, recommendedOnly bool) ([]models.LearningPath, error) {
	paths, err := s.progress.LearningPaths(ctx, recommendedOnly)
	if err != nil {
		return nil, fmt.Errorf("list learning paths: %w", err)
	}
	return paths, nil
}

func (s *learningService) Progress(ctx context.Context, userID string) (dto.ProgressResponse, error) {
	rows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("list progress: %w", err)
	}
	courses, err := s.progress.CoursesForUser(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("list progress courses: %w", err)
	}
	if rows == nil {
		rows = []models.Progress{}
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return dto.ProgressResponse{Progress: rows, Courses: courses}, nil
}

func (s *learningService) User(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}
