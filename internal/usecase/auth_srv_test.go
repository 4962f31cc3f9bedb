package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-review/internal/dto/request"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAuth(s *store) *authService {
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 2}}
	svc := NewAuthService(s.repository(), cfg, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	auth := newAuth(s)
	client := ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"}

	reg, err := auth.Register(ctx, &request.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secret1"}, client)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Email != "ana@example.com" {
		t.Fatalf("Email = %q, want normalized", reg.Email)
	}
	if !reg.ExpiresAt.Equal(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("ExpiresAt = %v, want two hours after now", reg.ExpiresAt)
	}
	if _, err := uuid.Parse(reg.Token); err != nil {
		t.Fatalf("token %q is not a uuid", reg.Token)
	}

	if _, err := auth.Register(ctx, &request.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}, client); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate Register err = %v, want ErrEmailTaken", err)
	}

	login, err := auth.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "secret1"}, client)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != reg.UserID || login.Token == reg.Token {
		t.Fatalf("Login = %+v, want same user with a fresh token", login)
	}

	if _, err := auth.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "wrong!"}, client); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret1"}, client); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, err := newAuth(newStore()).Register(context.Background(),
		&request.RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "123"}, ClientInfo{})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields = %v, want email and password", verr.Fields)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	auth := newAuth(s)

	reg, err := auth.Register(ctx, &request.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}, ClientInfo{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := auth.Logout(ctx, reg.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := auth.Logout(ctx, reg.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("second Logout err = %v, want ErrUnauthenticated", err)
	}
	if err := auth.Logout(ctx, "garbage"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Logout(garbage) err = %v, want ErrUnauthenticated", err)
	}
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	auth := newAuth(s)

	reg, err := auth.Register(ctx, &request.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}, ClientInfo{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "secret1"}, ClientInfo{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	n, err := auth.LogoutAll(ctx, uuid.MustParse(reg.UserID))
	if err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	if n != 2 {
		t.Fatalf("revoked %d sessions, want 2", n)
	}
	if err := auth.Logout(ctx, reg.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Logout after LogoutAll err = %v, want ErrUnauthenticated", err)
	}
	if _, err := auth.LogoutAll(ctx, uuid.Nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous LogoutAll err = %v, want ErrUnauthenticated", err)
	}
}
