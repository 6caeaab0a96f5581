package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/seed"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

const defaultTokenTTL = 24 * time.Hour

// SessionStore is the part of session.Store the shell needs.
type SessionStore interface {
	Open(user models.User) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Close(id string) error
}

// ShellService implements the navigation shell: login, registration, password
// reset, logout and the role menu.
type ShellService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.SessionResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ViewResponse, error)
	Logout(ctx context.Context, sessionID string) (dto.ViewResponse, error)
	Me(ctx context.Context, sessionID string) (dto.MeResponse, error)
}

// ShellConfig carries the token settings of the shell.
type ShellConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Now       func() time.Time
}

type shellService struct {
	dataset   *seed.Dataset
	users     repository.UserRepository
	sessions  SessionStore
	forms     CreationService
	validator *validator.Validate
	cfg       ShellConfig
	logger    zerolog.Logger
}

// NewShellService constructs the shell service.
func NewShellService(dataset *seed.Dataset, users repository.UserRepository, sessions SessionStore, forms CreationService, validate *validator.Validate, cfg ShellConfig, logger zerolog.Logger) ShellService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &shellService{
		dataset:   dataset,
		users:     users,
		sessions:  sessions,
		forms:     forms,
		validator: validate,
		cfg:       cfg,
		logger:    logger.With().Str("component", "shell_service").Logger(),
	}
}

func (s *shellService) Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return dto.SessionResponse{}, formErrorFrom(err)
	}

	user, err := s.resolveUser(ctx, req.Email)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	return s.open(user)
}

// resolveUser looks the email up in the demo accounts first and then in the
// user directory.
func (s *shellService) resolveUser(ctx context.Context, email string) (models.User, error) {
	if account, ok := s.dataset.Account(email); ok {
		user, err := s.users.GetByID(ctx, account.UserID)
		if err != nil && !repository.IsNotFound(err) {
			return models.User{}, fmt.Errorf("load account user: %w", err)
		}
		if err != nil {
			user = models.User{ID: account.UserID, Name: account.Name, Email: account.Email}
		}
		user.Role = account.Role
		return user, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.User{}, fmt.Errorf("%w: try one of %s", ErrUnknownAccount, strings.Join(s.dataset.AccountEmails(), ", "))
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *shellService) Register(ctx context.Context, req dto.RegisterRequest) (dto.SessionResponse, error) {
	created, err := s.forms.SubmitUser(ctx, dto.UserFormRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, nil)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	user := models.User{
		ID:        strconv.FormatInt(created.ID, 10),
		Name:      created.Name,
		Email:     created.Email,
		Role:      created.Role,
		CreatedOn: created.JoinDate,
	}
	return s.open(user)
}

func (s *shellService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ViewResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return dto.ViewResponse{}, formErrorFrom(err)
	}

	s.logger.Info().Str("email", maskEmailAddress(req.Email)).Msg("password reset requested")
	return dto.ViewResponse{View: session.ViewLogin}, nil
}

func (s *shellService) Logout(ctx context.Context, sessionID string) (dto.ViewResponse, error) {
	if err := s.sessions.Close(sessionID); err != nil {
		return dto.ViewResponse{}, err
	}
	return dto.ViewResponse{View: session.ViewLogin}, nil
}

func (s *shellService) Me(ctx context.Context, sessionID string) (dto.MeResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return dto.MeResponse{}, err
	}
	return dto.MeResponse{
		SessionID: sess.ID,
		User:      sess.User,
		View:      sess.View(),
		Menu:      sess.Menu(),
		OpenedAt:  sess.CreatedAt,
	}, nil
}

func (s *shellService) open(user models.User) (dto.SessionResponse, error) {
	sess, err := s.sessions.Open(user)
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("open session: %w", err)
	}

	now := s.cfg.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		_ = s.sessions.Close(sess.ID)
		return dto.SessionResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	return dto.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		View:      sess.View(),
		Menu:      sess.Menu(),
	}, nil
}
