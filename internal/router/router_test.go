package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edgylearn-api/internal/config"
	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/database"
	"github.com/noah-isme/edgylearn-api/internal/handler"
	"github.com/noah-isme/edgylearn-api/internal/middleware"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/router"
	"github.com/noah-isme/edgylearn-api/internal/seed"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

const secret = "router-test-secret"

func newApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	logger := zerolog.Nop()

	dataset, err := seed.Default()
	require.NoError(t, err)
	db, err := database.ConnectMemory("router-" + uuid.NewString())
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
	cfg := config.Config{AppName: "edgylearn-test", AppEnv: "test", JWTSecret: secret}

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(service.NewShellService(dataset, users, store, forms, validate, service.ShellConfig{JWTSecret: secret}, logger), logger),
		CatalogHandler:          handler.NewCatalogHandler(service.NewCatalogService(repository.NewCourseRepository(db), nil, time.Minute, validate, logger), logger),
		LearningHandler:         handler.NewLearningHandler(service.NewLearningService(dataset, repository.NewProgressRepository(db), users, logger), logger),
		AdminDashboardHandler:   handler.NewAdminDashboardHandler(service.NewAdminDashboardService(forms, events, logger), logger),
		TeacherDashboardHandler: handler.NewTeacherDashboardHandler(service.NewTeacherDashboardService(forms, events, logger), logger),
		StudentDashboardHandler: handler.NewStudentDashboardHandler(service.NewStudentDashboardService(events, logger), logger),
		StreamHandler:           handler.NewStreamHandler(events, logger, time.Minute),
		Sessions:                store,
		ActiveSessions:          store.Len,
		JWTMiddleware:           middleware.JWTProtected(secret),
	})
	return app, store
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/v2/auth/login", "", map[string]string{"email": email})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Data.Token)
	return payload.Data.Token
}

func TestPublicRoutes(t *testing.T) {
	app, _ := newApp(t)

	resp := request(t, app, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "edgylearn-test", resp.Header.Get("X-Application"))
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/api/v1/landing", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionRoutesNeedToken(t *testing.T) {
	app, _ := newApp(t)

	for _, path := range []string{"/api/v2/catalog", "/api/v2/progress", "/api/v2/auth/me", "/api/v2/student/dashboard"} {
		resp := request(t, app, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRoleGroups(t *testing.T) {
	app, store := newApp(t)

	student := login(t, app, "estudiante@edgylearn.com")
	teacher := login(t, app, "docente@edgylearn.com")
	require.Equal(t, 2, store.Len())

	resp := request(t, app, http.MethodGet, "/api/v2/student/dashboard", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/api/v2/admin/dashboard", student, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/api/v2/teacher/dashboard", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/api/v2/catalog?search=react", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app, store := newApp(t)
	token := login(t, app, "admin@edgylearn.com")

	resp := request(t, app, http.MethodPost, "/api/v2/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Zero(t, store.Len())

	resp = request(t, app, http.MethodGet, "/api/v2/admin/dashboard", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.True(t, strings.Contains(string(body), "session expired"))
}
