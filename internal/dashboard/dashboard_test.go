package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/seed"
)

func TestIDGeneratorStrictlyIncreases(t *testing.T) {
	gen := NewIDGenerator(clock)

	first := gen.Next()
	second := gen.Next()
	third := gen.Next()

	require.Equal(t, fixedNow.UnixMilli(), first)
	require.Equal(t, first+1, second)
	require.Equal(t, second+1, third)
}

func TestIDGeneratorSurvivesClockGoingBack(t *testing.T) {
	now := fixedNow
	gen := NewIDGenerator(func() time.Time { return now })

	first := gen.Next()
	now = now.Add(-time.Hour)
	require.Greater(t, gen.Next(), first)
}

func TestPrependedTruncates(t *testing.T) {
	items := []int{1, 2, 3, 4}

	out := prepended(0, items, 4)
	require.Equal(t, []int{0, 1, 2, 3}, out)
	require.Equal(t, []int{1, 2, 3, 4}, items)

	require.Equal(t, []int{0, 1, 2, 3, 4}, prepended(0, items, 0))
}

func TestHelpersDoNotMutateInput(t *testing.T) {
	items := []int{1, 2, 3}

	require.Equal(t, []int{1, 3}, removed(items, 1))
	require.Equal(t, []int{1, 9, 3}, replaced(items, 1, 9))
	require.Equal(t, []int{1, 2, 3}, items)
}

func TestBoardsReportRole(t *testing.T) {
	boards := []Board{
		NewAdmin(adminFixture()),
		NewTeacher(teacherFixture(), nil, nil, clock),
		NewStudent(studentFixture()),
	}

	require.Equal(t, "admin", string(boards[0].Role()))
	require.Equal(t, "teacher", string(boards[1].Role()))
	require.Equal(t, "student", string(boards[2].Role()))
	for _, board := range boards {
		require.NotNil(t, board.View())
	}
}

func TestNewBoardFromSeed(t *testing.T) {
	dataset, err := seed.Default()
	require.NoError(t, err)

	for _, role := range []models.Role{models.RoleAdmin, models.RoleTeacher, models.RoleStudent} {
		board, err := NewBoard(role, dataset.Dashboards, NewIDGenerator(clock), clock)
		require.NoError(t, err)
		require.Equal(t, role, board.Role())
	}

	_, err = NewBoard(models.Role("guest"), dataset.Dashboards, nil, nil)
	require.Error(t, err)
}

func TestBoardsDoNotShareSeedState(t *testing.T) {
	dataset, err := seed.Default()
	require.NoError(t, err)

	first, err := NewBoard(models.RoleAdmin, dataset.Dashboards, nil, nil)
	require.NoError(t, err)
	second, err := NewBoard(models.RoleAdmin, dataset.Dashboards, nil, nil)
	require.NoError(t, err)

	first.(*Admin).Approve(dataset.Dashboards.Admin.PendingCourses[0].ID)

	require.Len(t, second.(*Admin).Snapshot().PendingCourses, len(dataset.Dashboards.Admin.PendingCourses))
}
