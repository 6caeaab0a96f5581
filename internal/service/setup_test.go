package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/database"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/seed"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testDataset(t *testing.T) *seed.Dataset {
	t.Helper()
	dataset, err := seed.Default()
	require.NoError(t, err)
	return dataset
}

func seededDB(t *testing.T, dataset *seed.Dataset) *gorm.DB {
	t.Helper()
	db, err := database.ConnectMemory("service-" + uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, repository.LoadSeed(context.Background(), db, dataset))
	return db
}

func testForms() CreationService {
	return NewCreationService(NewValidator(), dashboard.NewIDGenerator(clock), testLogger(),
		WithClock(clock), WithBcryptCost(bcrypt.MinCost))
}

func testStore(t *testing.T, dataset *seed.Dataset, hooks session.Hooks) *session.Store {
	t.Helper()
	store := session.NewStore(context.Background(), func(user models.User) (dashboard.Board, error) {
		return dashboard.NewBoard(user.Role, dataset.Dashboards, dashboard.NewIDGenerator(clock), clock)
	}, session.Config{
		Intervals: map[models.Role]time.Duration{
			models.RoleAdmin:   time.Hour,
			models.RoleTeacher: time.Hour,
			models.RoleStudent: time.Hour,
		},
		Hooks:  hooks,
		Logger: testLogger(),
	})
	t.Cleanup(store.CloseAll)
	return store
}

func openSession(t *testing.T, store *session.Store, role models.Role) *session.Session {
	t.Helper()
	sess, err := store.Open(models.User{ID: "test-" + string(role), Name: "Test", Role: role})
	require.NoError(t, err)
	return sess
}
