package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

func TestAdminApprove(t *testing.T) {
	admin := NewAdmin(adminFixture())

	change := admin.Approve(2)
	require.True(t, change.Applied)
	require.Equal(t, "Diseño UX/UI", change.Before.Title)
	require.Equal(t, models.CourseStatusApproved, change.After.Status)

	snap := admin.Snapshot()
	require.Len(t, snap.PendingCourses, 2)
	require.Equal(t, 90, snap.Stats.TotalCourses)
	require.Equal(t, 11, snap.Stats.PendingApprovals)
	for _, course := range snap.PendingCourses {
		require.NotEqual(t, int64(2), course.ID)
	}
}

func TestAdminApproveStaleIDIsNoop(t *testing.T) {
	admin := NewAdmin(adminFixture())
	before := admin.Snapshot()

	change := admin.Approve(99)
	require.False(t, change.Found)
	require.False(t, change.Applied)
	require.Equal(t, before, admin.Snapshot())
}

func TestAdminPendingApprovalsNeverNegative(t *testing.T) {
	fixture := adminFixture()
	fixture.Stats.PendingApprovals = 1
	admin := NewAdmin(fixture)

	admin.Approve(1)
	admin.Reject(2)
	admin.Approve(3)

	snap := admin.Snapshot()
	require.Equal(t, 0, snap.Stats.PendingApprovals)
	require.Empty(t, snap.PendingCourses)
	require.Equal(t, 91, snap.Stats.TotalCourses)
}

func TestAdminRejectKeepsCourseCount(t *testing.T) {
	admin := NewAdmin(adminFixture())

	change := admin.Reject(1)
	require.True(t, change.Applied)
	require.Equal(t, models.CourseStatusRejected, change.After.Status)

	snap := admin.Snapshot()
	require.Equal(t, 89, snap.Stats.TotalCourses)
	require.Equal(t, 11, snap.Stats.PendingApprovals)
}

func TestAdminReview(t *testing.T) {
	admin := NewAdmin(adminFixture())

	course, ok := admin.Review(3)
	require.True(t, ok)
	require.Equal(t, "Blockchain", course.Title)

	_, ok = admin.Review(42)
	require.False(t, ok)
	require.Len(t, admin.Snapshot().PendingCourses, 3)
}

func TestAdminPromoteLadder(t *testing.T) {
	admin := NewAdmin(adminFixture())

	change := admin.Promote(1)
	require.True(t, change.Applied)
	require.Equal(t, models.RoleTeacher, change.After.Role)

	change = admin.Promote(1)
	require.True(t, change.Applied)
	require.Equal(t, models.RoleAdmin, change.After.Role)

	change = admin.Promote(1)
	require.True(t, change.Found)
	require.False(t, change.Applied)
	require.Equal(t, models.RoleAdmin, admin.Snapshot().RecentUsers[0].Role)
}

func TestAdminToggleSuspendIsInvolution(t *testing.T) {
	for _, id := range []int64{1, 2, 4} {
		admin := NewAdmin(adminFixture())
		before := admin.Snapshot().RecentUsers

		admin.ToggleSuspend(id)
		admin.ToggleSuspend(id)

		require.Equal(t, before, admin.Snapshot().RecentUsers, "user %d", id)
	}
}

func TestAdminToggleSuspendFlipsStatus(t *testing.T) {
	admin := NewAdmin(adminFixture())

	require.Equal(t, models.UserStatusSuspended, admin.ToggleSuspend(1).After.Status)
	require.Equal(t, models.UserStatusActive, admin.ToggleSuspend(4).After.Status)

	pending := admin.ToggleSuspend(2)
	require.True(t, pending.Found)
	require.False(t, pending.Applied)
	require.Equal(t, models.UserStatusPending, pending.After.Status)
}

func TestAdminAddUserTruncates(t *testing.T) {
	admin := NewAdmin(adminFixture())

	admin.AddUser(models.ManagedUser{ID: 100, Name: "Nuevo", Role: models.RoleStudent, Status: models.UserStatusActive})

	snap := admin.Snapshot()
	require.Len(t, snap.RecentUsers, RecentUsersLimit)
	require.Equal(t, int64(100), snap.RecentUsers[0].ID)
	require.Equal(t, int64(3), snap.RecentUsers[3].ID)
	require.Equal(t, 1248, snap.Stats.TotalUsers)
}

func TestAdminSnapshotIsolation(t *testing.T) {
	admin := NewAdmin(adminFixture())
	held := admin.Snapshot()

	admin.Approve(1)
	admin.Promote(3)

	require.Len(t, held.PendingCourses, 3)
	require.Equal(t, models.RoleStudent, held.RecentUsers[2].Role)
}

func TestAdminTick(t *testing.T) {
	admin := NewAdmin(adminFixture())

	require.False(t, admin.Tick(liveness.NewSequence([]float64{0.5}, nil)))
	require.Equal(t, 1247, admin.Snapshot().Stats.TotalUsers)

	require.True(t, admin.Tick(liveness.NewSequence([]float64{0.9}, []int{1, 2, 1})))
	snap := admin.Snapshot()
	require.Equal(t, 1248, snap.Stats.TotalUsers)
	require.Equal(t, 857, snap.Stats.ActiveStudents)
	require.Equal(t, float64(158), snap.Metrics[0].Value)
	require.Equal(t, float64(24), snap.Metrics[1].Value)
	require.Equal(t, 4.6, snap.Metrics[2].Value)
	require.Equal(t, float64(87), snap.Metrics[3].Value)
}
