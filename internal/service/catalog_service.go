package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/observability"
	"github.com/noah-isme/edgylearn-api/internal/repository"
)

const filterAll = "all"

// CatalogFilter is a normalised catalog query. Empty fields match everything.
type CatalogFilter struct {
	Search   string
	Category string
	Level    models.CourseLevel
}

// NewCatalogFilter normalises raw query values: blanks and "all" disable a
// filter, levels accept the Spanish labels.
func NewCatalogFilter(query dto.CatalogQuery) (CatalogFilter, error) {
	filter := CatalogFilter{
		Search:   strings.TrimSpace(query.Search),
		Category: strings.TrimSpace(query.Category),
	}
	if strings.EqualFold(filter.Category, filterAll) {
		filter.Category = ""
	}

	level := strings.TrimSpace(query.Level)
	if level != "" && !strings.EqualFold(level, filterAll) {
		parsed, ok := models.ParseCourseLevel(level)
		if !ok {
			return CatalogFilter{}, fmt.Errorf("%w: unknown level %q", ErrInvalidCatalogQuery, level)
		}
		filter.Level = parsed
	}
	return filter, nil
}

// Matches reports whether course passes every active filter.
func (f CatalogFilter) Matches(course models.Course) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(course.Title), needle) &&
			!strings.Contains(strings.ToLower(course.Description), needle) {
			return false
		}
	}
	if f.Category != "" && course.Category != f.Category {
		return false
	}
	if f.Level != "" && course.Level != f.Level {
		return false
	}
	return true
}

// VisibleCourses narrows courses to what role may browse: teachers see their
// own courses, everybody else sees approved ones.
func VisibleCourses(courses []models.Course, role models.Role, userID string) []models.Course {
	visible := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if role == models.RoleTeacher {
			if course.InstructorID == userID {
				visible = append(visible, course)
			}
			continue
		}
		if course.Status == models.CourseStatusApproved {
			visible = append(visible, course)
		}
	}
	return visible
}

// FilterCourses applies role visibility and then the filter.
func FilterCourses(courses []models.Course, role models.Role, userID string, filter CatalogFilter) []models.Course {
	filtered := make([]models.Course, 0, len(courses))
	for _, course := range VisibleCourses(courses, role, userID) {
		if filter.Matches(course) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

// SummarizeCatalog reduces the filtered list. Categories counts the distinct
// categories of the whole catalog, not just the filtered courses.
func SummarizeCatalog(filtered []models.Course, categories []string) dto.CatalogStats {
	stats := dto.CatalogStats{
		Count:      len(filtered),
		Categories: len(categories),
	}
	if len(filtered) == 0 {
		return stats
	}

	total := 0.0
	for _, course := range filtered {
		stats.Enrolled += course.StudentsEnrolled
		total += course.Rating
	}
	stats.AverageRating = roundTo(total/float64(len(filtered)), 1)
	return stats
}

// CatalogService serves the filtered course catalog.
type CatalogService interface {
	Browse(ctx context.Context, user models.User, query dto.CatalogQuery) (dto.CatalogResponse, error)
	Course(ctx context.Context, id string) (models.Course, error)
}

type catalogService struct {
	repo      repository.CourseRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogService constructs the catalog service. A nil cache disables caching.
func NewCatalogService(repo repository.CourseRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) CatalogService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &catalogService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) Browse(ctx context.Context, user models.User, query dto.CatalogQuery) (dto.CatalogResponse, error) {
	if err := s.validator.StructCtx(ctx, query); err != nil {
		return dto.CatalogResponse{}, fmt.Errorf("%w: %v", ErrInvalidCatalogQuery, err)
	}
	filter, err := NewCatalogFilter(query)
	if err != nil {
		return dto.CatalogResponse{}, err
	}

	role := string(user.Role)
	cacheKey := ""
	if s.cache != nil {
		cacheKey = catalogCacheKey(user, filter)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.CatalogResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.CatalogRequests().WithLabelValues(role, "hit").Inc()
				return response, nil
			}
		}
	}

	courses, err := s.repo.List(ctx, repository.CourseScope{})
	if err != nil {
		observability.CatalogRequests().WithLabelValues(role, "error").Inc()
		return dto.CatalogResponse{}, fmt.Errorf("list courses: %w", err)
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		observability.CatalogRequests().WithLabelValues(role, "error").Inc()
		return dto.CatalogResponse{}, fmt.Errorf("list categories: %w", err)
	}

	filtered := FilterCourses(courses, user.Role, user.ID, filter)
	levels := make([]string, 0, len(models.CourseLevels))
	for _, level := range models.CourseLevels {
		levels = append(levels, string(level))
	}

	response := dto.CatalogResponse{
		Courses:    filtered,
		Categories: categories,
		Levels:     levels,
		Stats:      SummarizeCatalog(filtered, categories),
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache catalog")
			}
		}
	}

	observability.CatalogRequests().WithLabelValues(role, "miss").Inc()
	return response, nil
}

func (s *catalogService) Course(ctx context.Context, id string) (models.Course, error) {
	course, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if repository.IsNotFound(err) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, fmt.Errorf("get course %s: %w", id, err)
	}
	return course, nil
}

func catalogCacheKey(user models.User, filter CatalogFilter) string {
	owner := "all"
	if user.Role == models.RoleTeacher {
		owner = user.ID
	}
	return fmt.Sprintf("catalog:v1:%s:%s:%s:%s:%s",
		user.Role, owner, strings.ToLower(filter.Search), filter.Category, filter.Level)
}
