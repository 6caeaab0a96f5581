package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/database"
	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/handler"
	"github.com/noah-isme/edgylearn-api/internal/middleware"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/seed"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

type testServer struct {
	app        *fiber.App
	store      *session.Store
	events     service.DashboardEvents
	subscribed chan string
}

// signallingEvents reports every stream subscription so tests know when a
// stream is attached.
type signallingEvents struct {
	service.DashboardEvents
	subscribed chan string
}

func (e signallingEvents) Subscribe(sessionID string) (<-chan dto.DashboardEvent, func()) {
	events, cleanup := e.DashboardEvents.Subscribe(sessionID)
	e.subscribed <- sessionID
	return events, cleanup
}

// newTestServer mounts every handler on a fiber app. Requests pick their
// session with the X-Test-Session header.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zerolog.Nop()

	dataset, err := seed.Default()
	require.NoError(t, err)
	db, err := database.ConnectMemory("handler-" + uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, repository.LoadSeed(context.Background(), db, dataset))

	validate := service.NewValidator()
	forms := service.NewCreationService(validate, dashboard.NewIDGenerator(time.Now), logger, service.WithBcryptCost(bcrypt.MinCost))
	events := service.NewDashboardEvents(nil, nil, "", logger)

	store := session.NewStore(context.Background(), func(user models.User) (dashboard.Board, error) {
		return dashboard.NewBoard(user.Role, dataset.Dashboards, dashboard.NewIDGenerator(time.Now), time.Now)
	}, session.Config{
		Intervals: map[models.Role]time.Duration{
			models.RoleAdmin:   time.Hour,
			models.RoleTeacher: time.Hour,
			models.RoleStudent: time.Hour,
		},
		Hooks:  service.SessionHooks(events, logger),
		Logger: logger,
	})
	t.Cleanup(store.CloseAll)

	users := repository.NewUserRepository(db)
	shell := service.NewShellService(dataset, users, store, forms, validate, service.ShellConfig{JWTSecret: testSecret}, logger)
	catalog := service.NewCatalogService(repository.NewCourseRepository(db), nil, time.Minute, validate, logger)
	learning := service.NewLearningService(dataset, repository.NewProgressRepository(db), users, logger)

	app := fiber.New()
	withSession := func(c *fiber.Ctx) error {
		c.Locals("session_id", c.Get("X-Test-Session"))
		return c.Next()
	}
	requireSession := middleware.RequireSession(store)

	auth := handler.NewAuthHandler(shell, logger)
	learningHandler := handler.NewLearningHandler(learning, logger)

	v1 := app.Group("/api/v1")
	learningHandler.RegisterPublic(v1)

	authGroup := app.Group("/api/v2/auth")
	auth.RegisterPublic(authGroup)
	auth.RegisterSession(authGroup, withSession, requireSession)

	v2 := app.Group("/api/v2")
	learningHandler.RegisterSession(v2, withSession, requireSession)
	handler.NewCatalogHandler(catalog, logger).Register(v2.Group("/catalog", withSession, requireSession))
	handler.NewAdminDashboardHandler(service.NewAdminDashboardService(forms, events, logger), logger).Register(v2.Group("/admin", withSession, requireSession))
	handler.NewTeacherDashboardHandler(service.NewTeacherDashboardService(forms, events, logger), logger).Register(v2.Group("/teacher", withSession, requireSession))
	handler.NewStudentDashboardHandler(service.NewStudentDashboardService(events, logger), logger).Register(v2.Group("/student", withSession, requireSession))

	subscribed := make(chan string, 4)
	handler.NewStreamHandler(signallingEvents{DashboardEvents: events, subscribed: subscribed}, logger, time.Hour).Register(v2.Group("/dashboard", withSession, requireSession))

	return &testServer{app: app, store: store, events: events, subscribed: subscribed}
}

func (s *testServer) open(t *testing.T, role models.Role) *session.Session {
	t.Helper()
	sess, err := s.store.Open(models.User{ID: "1", Name: "Test", Email: "test@edgylearn.com", Role: role})
	require.NoError(t, err)
	return sess
}

func (s *testServer) do(t *testing.T, method, path, sessionID string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Test-Session", sessionID)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decodeData(t *testing.T, payload envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(payload.Data, target))
}
