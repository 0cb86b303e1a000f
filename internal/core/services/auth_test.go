package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockUserStore, *mocks.MockSessionStore, *mocks.MockAuthAdapter, *authService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(userStore, sessionStore, authAdapter, nil).(*authService)
	return userStore, sessionStore, authAdapter, svc
}

func seedUser(t *testing.T, store *mocks.MockUserStore, id, email string, role domain.Role, active bool) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "password123", // Mock hasher uses plain text comparison
		Name:         "Test User",
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now(),
	}
	if err := store.Save(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Authenticate(t *testing.T) {
	userStore, sessionStore, _, svc := newTestAuthService()
	seedUser(t, userStore, "user-123", "admin@example.com", domain.RoleAdmin, true)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{"valid credentials", domain.LoginRequest{Email: "admin@example.com", Password: "password123"}, nil},
		{"email case and spaces", domain.LoginRequest{Email: " Admin@Example.com ", Password: "password123"}, nil},
		{"empty email", domain.LoginRequest{Password: "password123"}, domain.ErrInvalidInput},
		{"empty password", domain.LoginRequest{Email: "admin@example.com"}, domain.ErrInvalidInput},
		{"wrong password", domain.LoginRequest{Email: "admin@example.com", Password: "nope"}, domain.ErrInvalidCredentials},
		{"unknown user", domain.LoginRequest{Email: "who@example.com", Password: "password123"}, domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Authenticate(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" || resp.RefreshToken == "" {
				t.Error("expected token pair to be generated")
			}
			if resp.User.Email != "admin@example.com" {
				t.Errorf("unexpected user %+v", resp.User)
			}
		})
	}

	if sessionStore.Count() != 2 {
		t.Errorf("expected one session per successful login, got %d", sessionStore.Count())
	}
}

func TestAuthService_Authenticate_InactiveUser(t *testing.T) {
	userStore, _, _, svc := newTestAuthService()
	seedUser(t, userStore, "user-123", "inactive@example.com", domain.RoleReviewer, false)

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "inactive@example.com",
		Password: "password123",
	})

	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for inactive user, got %v", err)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	userStore, sessionStore, authAdapter, svc := newTestAuthService()
	seedUser(t, userStore, "admin-1", "admin@example.com", domain.RoleAdmin, true)

	login, err := svc.Authenticate(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authCtx, err := svc.ValidateToken(ctx, login.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.UserID != "admin-1" || !authCtx.IsAdmin() || authCtx.SessionID == "" {
		t.Errorf("unexpected auth context %+v", authCtx)
	}

	expired, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    "admin-1",
		SessionID: authCtx.SessionID,
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	orphan, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    "admin-1",
		SessionID: "no-such-session",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	_ = sessionStore.Save(ctx, &domain.Session{ID: "stale", UserID: "admin-1", ExpiresAt: time.Now().Add(-time.Minute)})
	stale, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    "admin-1",
		SessionID: "stale",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty token", "", domain.ErrTokenInvalid},
		{"garbage", "not!valid@base64#", domain.ErrTokenInvalid},
		{"expired claims", expired, domain.ErrTokenExpired},
		{"missing session", orphan, domain.ErrSessionNotFound},
		{"expired session", stale, domain.ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(ctx, tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userStore, sessionStore, _, svc := newTestAuthService()
	seedUser(t, userStore, "admin-1", "admin@example.com", domain.RoleAdmin, true)

	login, err := svc.Authenticate(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("expected refresh token rotation")
	}
	if sessionStore.Count() != 1 {
		t.Errorf("expected old session to be replaced, have %d sessions", sessionStore.Count())
	}

	if _, err := svc.ValidateToken(ctx, login.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("old token should no longer validate, got %v", err)
	}
	if _, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("old refresh token should be rejected, got %v", err)
	}
	if _, err := svc.RefreshToken(ctx, domain.RefreshRequest{}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("empty refresh token should be rejected, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userStore, sessionStore, _, svc := newTestAuthService()
	seedUser(t, userStore, "admin-1", "admin@example.com", domain.RoleAdmin, true)

	login, _ := svc.Authenticate(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "password123"})
	if err := svc.Logout(ctx, login.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, login.Token); err == nil {
		t.Error("expected token to be invalid after logout")
	}

	if err := svc.Logout(ctx, ""); err != nil {
		t.Errorf("empty token logout should be a no-op, got %v", err)
	}
	if err := svc.Logout(ctx, "garbage!"); err != nil {
		t.Errorf("invalid token logout should be a no-op, got %v", err)
	}

	_, _ = svc.Authenticate(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "password123"})
	_, _ = svc.Authenticate(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "password123"})
	if err := svc.LogoutAll(ctx, "admin-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected all sessions removed, have %d", sessionStore.Count())
	}
}
