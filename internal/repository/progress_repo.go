package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/edgylearn-api/internal/models"
)

// ProgressRepository reads per-course progress and learning paths.
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Progress, error)
	CoursesForUser(ctx context.Context, userID string) ([]models.Course, error)
	LearningPaths(ctx context.Context, recommendedOnly bool) ([]models.LearningPath, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository constructs a progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	var items []models.Progress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("course_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CoursesForUser resolves the user's progress rows to catalog courses, skipping
// rows whose course is missing.
func (r *progressRepository) CoursesForUser(ctx context.Context, userID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Joins("JOIN progress_records ON progress_records.course_id = courses.id").
		Where("progress_records.user_id = ?", userID).
		Order("courses.id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *progressRepository) LearningPaths(ctx context.Context, recommendedOnly bool) ([]models.LearningPath, error) {
	query := r.db.WithContext(ctx).Model(&models.LearningPath{})
	if recommendedOnly {
		query = query.Where("is_recommended = ?", true)
	}

	var paths []models.LearningPath
	if err := query.Order("id ASC").Find(&paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}
