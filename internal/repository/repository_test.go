package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/edgylearn-api/internal/database"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/seed"
)

func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectMemory("repo-" + uuid.NewString())
	require.NoError(t, err)

	dataset, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, LoadSeed(context.Background(), db, dataset))
	return db
}

func TestCourseRepositoryScopes(t *testing.T) {
	repo := NewCourseRepository(setupSeededDB(t))
	ctx := context.Background()

	approved, err := repo.List(ctx, CourseScope{Status: models.CourseStatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 4)
	for _, course := range approved {
		require.Equal(t, models.CourseStatusApproved, course.Status)
	}

	own, err := repo.List(ctx, CourseScope{InstructorID: "2"})
	require.NoError(t, err)
	require.Len(t, own, 2)
	require.Equal(t, "1", own[0].ID)
	require.Equal(t, "5", own[1].ID)
	require.Equal(t, []string{"Python", "Programación", "Beginner"}, []string(own[0].Tags))

	all, err := repo.List(ctx, CourseScope{})
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestCourseRepositoryCategoriesAndLookup(t *testing.T) {
	repo := NewCourseRepository(setupSeededDB(t))
	ctx := context.Background()

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Programación", "Inteligencia Artificial", "Desarrollo Web", "Análisis de Datos"}, categories)

	course, err := repo.GetByID(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, models.CourseStatusPending, course.Status)

	_, err = repo.GetByID(ctx, "404")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := NewUserRepository(setupSeededDB(t))
	ctx := context.Background()

	user, err := repo.FindByEmail(ctx, "  ANA.GARCIA@email.com ")
	require.NoError(t, err)
	require.Equal(t, "1", user.ID)

	teacher, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, teacher.Role)

	_, err = repo.GetByID(ctx, "99")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgressRepository(t *testing.T) {
	repo := NewProgressRepository(setupSeededDB(t))
	ctx := context.Background()

	progress, err := repo.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, progress, 2)
	require.Equal(t, 35, progress[0].CompletionPercentage)

	courses, err := repo.CoursesForUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "Introducción a la Programación en Python", courses[0].Title)

	none, err := repo.CoursesForUser(ctx, "3")
	require.NoError(t, err)
	require.Empty(t, none)

	paths, err := repo.LearningPaths(ctx, false)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	require.Equal(t, []string{"1", "3", "8"}, []string(paths[0].CourseIDs))

	recommended, err := repo.LearningPaths(ctx, true)
	require.NoError(t, err)
	require.Len(t, recommended, 2)
}
