// Package service implements registration, login and token issuing.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"kalkyle/internal/auth/repository"
	"kalkyle/internal/auth/transport"
	"kalkyle/internal/events"
	"kalkyle/platform/apperr"
	"kalkyle/platform/config"
	"kalkyle/platform/logger"

	"github.com/google/uuid"
)

const (
	msgEmailTaken     = "E-post er allerede registrert"
	msgBadCredentials = "Feil e-post eller passord"
	bcryptCost        = 10
	defaultRole       = "user"
)

// Service implements the auth use cases.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register creates a new account and returns a signed access token.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke registrere bruker", err).WithOp("auth.Register")
	}
	if exists {
		s.log.AuthEvent("register", email, false, "email taken")
		return transport.AuthResponse{}, apperr.Validation(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke registrere bruker", err).WithOp("auth.Register")
	}

	user, err := s.repo.Create(ctx, repository.CreateParams{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Company:      req.Company,
		Role:         defaultRole,
	})
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke registrere bruker", err).WithOp("auth.Register")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke registrere bruker", err).WithOp("auth.Register")
	}

	s.log.AuthEvent("register", email, true, "")
	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
	})

	return transport.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login verifies credentials and returns a signed access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return transport.AuthResponse{}, apperr.Unauthorized(msgBadCredentials)
		}
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke logge inn", err).WithOp("auth.Login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized(msgBadCredentials)
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "Kunne ikke logge inn", err).WithOp("auth.Login")
	}

	s.log.AuthEvent("login", email, true, "")
	return transport.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Company:   user.Company,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
