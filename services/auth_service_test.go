package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurants/config"
	"restaurants/models"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := config.Config{JWTSecret: "secret", JWTExpiry: time.Hour, CacheTTL: testTTL}
	return NewAuthService(newTestDB(t), newTestCache(), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	reg, err := s.Register(ctx, RegisterInput{Email: "john@example.com", Password: "password123", Name: "John"}, "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Role != models.RoleUser {
		t.Errorf("default role = %s, want USER", reg.Role)
	}

	info, err := ParseToken(reg.AccessToken, "secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if info.UserId != reg.UserID || info.Role != models.RoleUser {
		t.Errorf("token info = %+v", info)
	}

	var stored models.User
	s.DB.First(&stored, reg.UserID)
	if stored.Password == "password123" {
		t.Error("password stored in clear text")
	}

	login, err := s.Login(ctx, LoginInput{Email: "john@example.com", Password: "password123"}, "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Errorf("login user = %d, want %d", login.UserID, reg.UserID)
	}

	if _, err := s.Login(ctx, LoginInput{Email: "john@example.com", Password: "wrong"}, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "x"}, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)
	input := RegisterInput{Email: "dup@example.com", Password: "password123", Name: "Dup"}

	if _, err := s.Register(ctx, input, ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := s.Register(ctx, input, ""); !errors.Is(err, ErrConflict) {
		t.Errorf("second Register err = %v, want ErrConflict", err)
	}
}

func TestRegisterWithRole(t *testing.T) {
	s := newAuthService(t)
	reg, err := s.Register(context.Background(), RegisterInput{
		Email: "admin@example.com", Password: "password123", Name: "Admin", Role: models.RoleAdmin,
	}, "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", reg.Role)
	}
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)
	reg, _ := s.Register(ctx, RegisterInput{Email: "me@example.com", Password: "password123", Name: "Me"}, "")

	for i := 0; i < 2; i++ {
		user, err := s.Profile(ctx, reg.UserID)
		if err != nil {
			t.Fatalf("Profile: %v", err)
		}
		if user.Email != "me@example.com" || user.Name != "Me" || user.Role != models.RoleUser {
			t.Errorf("profile = %+v", user)
		}
	}

	if _, err := s.Profile(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
}
