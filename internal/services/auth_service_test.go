package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/dealdesk/dealdesk/internal/testutil"
)

func newAuthService(t *testing.T) (*services.AuthService, *testutil.Fixtures) {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret-for-testing-only",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return services.NewAuthService(db, cfg), testutil.NewFixtures(t, db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("missing tokens in register response")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("User.Email = %q", resp.User.Email)
	}

	if _, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice Again",
	}); !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}

	login, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login returned different user")
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "short", FullName: "A"}); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := svc.Register(&dto.RegisterRequest{Email: "", Password: "long-enough", FullName: "A"}); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked after one use.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("reused token err = %v, want ErrInvalidToken", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("post-logout refresh err = %v, want ErrInvalidToken", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, fx := newAuthService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	fx.CreateUser("Bob", "bob@example.com")

	name := "Alice Cooper"
	updated, err := svc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{FullName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.FullName != "Alice Cooper" {
		t.Errorf("FullName = %q", updated.FullName)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("nil email patch changed email to %q", updated.Email)
	}

	taken := "bob@example.com"
	if _, err := svc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Email: &taken}); !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("taken email err = %v, want ErrEmailTaken", err)
	}
}

func TestListUsers_SortedByName(t *testing.T) {
	svc, fx := newAuthService(t)
	fx.CreateUser("Zoe", "zoe@example.com")
	fx.CreateUser("Adam", "adam@example.com")

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].FullName != "Adam" {
		t.Errorf("users not sorted by name: %q first", users[0].FullName)
	}
}
