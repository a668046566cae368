package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kalkyle/internal/auth/repository"
	"kalkyle/internal/auth/transport"
	"kalkyle/internal/events"
	"kalkyle/platform/apperr"
	"kalkyle/platform/logger"
)

type stubRepo struct {
	users   map[string]repository.User
	created repository.CreateParams
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]repository.User)}
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("Bruker ikke funnet")
}

func (r *stubRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := r.users[email]
	if !ok {
		return repository.User{}, apperr.NotFound("Bruker ikke funnet")
	}
	return u, nil
}

func (r *stubRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubRepo) Create(_ context.Context, params repository.CreateParams) (repository.User, error) {
	r.created = params
	u := repository.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Company:      params.Company,
		Role:         params.Role,
	}
	r.users[params.Email] = u
	return u, nil
}

type testAuthConfig struct{}

func (testAuthConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	return New(repo, testAuthConfig{}, events.NewInMemoryBus(log), log)
}

func TestRegister_NormalizesEmailAndLowercases(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), transport.RegisterRequest{
		Email:    "  Ola.Nordmann@Example.COM ",
		Password: "hemmelig123",
		Name:     "Ola Nordmann",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.created.Email != "ola.nordmann@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if repo.created.Role != "user" {
		t.Fatalf("expected default role user, got %q", repo.created.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestRegister_DuplicateEmailIsValidationError(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	req := transport.RegisterRequest{Email: "ola@example.com", Password: "hemmelig123", Name: "Ola"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Message != "E-post er allerede registrert" {
		t.Fatalf("expected Norwegian duplicate message, got %v", err)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	repo := newStubRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("riktig"), bcrypt.MinCost)
	repo.users["ola@example.com"] = repository.User{
		ID:           uuid.New(),
		Email:        "ola@example.com",
		PasswordHash: string(hash),
		Role:         "user",
	}
	svc := newTestService(repo)

	_, errUnknown := svc.Login(context.Background(), transport.LoginRequest{Email: "ingen@example.com", Password: "x"})
	_, errWrongPw := svc.Login(context.Background(), transport.LoginRequest{Email: "ola@example.com", Password: "feil"})

	for _, err := range []error{errUnknown, errWrongPw} {
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		var domainErr *apperr.Error
		if !errors.As(err, &domainErr) || domainErr.Message != "Feil e-post eller passord" {
			t.Fatalf("expected identical credential message, got %v", err)
		}
	}
}

func TestLogin_IssuesAccessTokenWithRoleClaim(t *testing.T) {
	repo := newStubRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hemmelig123"), bcrypt.MinCost)
	userID := uuid.New()
	repo.users["kari@example.com"] = repository.User{
		ID:           userID,
		Email:        "kari@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), transport.LoginRequest{Email: "kari@example.com", Password: "hemmelig123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(resp.Token, func(_ *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != userID.String() {
		t.Fatalf("expected sub %s, got %v", userID, claims["sub"])
	}
	if claims["role"] != "admin" {
		t.Fatalf("expected role claim admin, got %v", claims["role"])
	}
	if claims["type"] != "access" {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
}
