package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/edgylearn-api/internal/models"
)

// CourseScope narrows the catalog before free-text filtering.
type CourseScope struct {
	InstructorID string
	Status       models.CourseStatus
}

// CourseRepository reads catalog courses.
type CourseRepository interface {
	List(ctx context.Context, scope CourseScope) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	Categories(ctx context.Context) ([]string, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, scope CourseScope) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})
	if scope.InstructorID != "" {
		query = query.Where("instructor_id = ?", scope.InstructorID)
	}
	if scope.Status != "" {
		query = query.Where("status = ?", scope.Status)
	}

	var courses []models.Course
	if err := query.Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Categories returns the distinct categories across the whole catalog in
// first-seen order.
func (r *courseRepository) Categories(ctx context.Context) ([]string, error) {
	var rows []models.Course
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Select("id", "category").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		categories = append(categories, row.Category)
	}
	return categories, nil
}
