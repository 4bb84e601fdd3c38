package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/shared"
)

func newTestAuthService(t *testing.T) (*AuthService, *PostgresService) {
	t.Helper()
	sqlSvc := newTestSQL(t)
	return &AuthService{
		sqlSvc: sqlSvc,
		jwtSvc: &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "test-secret"},
	}, sqlSvc
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ngPass",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if registered.UserID == "" {
		t.Fatal("empty user id")
	}

	// Login works with either identifier.
	for _, login := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(dto.LoginRequest{Login: login, Password: "Str0ngPass"})
		if err != nil {
			t.Fatalf("Login(%q) error: %v", login, err)
		}
		if resp.Token.AccessToken == "" {
			t.Fatalf("Login(%q) returned empty token", login)
		}
		if resp.Role != shared.RoleUser {
			t.Fatalf("role = %q, want %q", resp.Role, shared.RoleUser)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	req := dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "Str0ngPass"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	req.Email = "other@example.com"
	_, err := svc.Register(req)
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("err = %v, want 409 AppError", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(dto.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "Str0ngPass"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Register(dto.RegisterRequest{Username: "carol2", Email: "carol@example.com", Password: "Str0ngPass"})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("err = %v, want 409 AppError", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(dto.RegisterRequest{Username: "dave", Email: "dave@example.com", Password: "Str0ngPass"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Login(dto.LoginRequest{Login: "dave", Password: "WrongPass1"})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 AppError", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(dto.LoginRequest{Login: "nobody", Password: "Whatever1"})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 AppError", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, sqlSvc := newTestAuthService(t)

	registered, err := svc.Register(dto.RegisterRequest{Username: "eve", Email: "eve@example.com", Password: "Str0ngPass"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, err := sqlSvc.Users().GetUser(registered.UserID)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	user.IsActive = false
	if err := sqlSvc.Users().UpdateUser(user); err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}

	_, err = svc.Login(dto.LoginRequest{Login: "eve", Password: "Str0ngPass"})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusForbidden {
		t.Fatalf("err = %v, want 403 AppError", err)
	}
}
