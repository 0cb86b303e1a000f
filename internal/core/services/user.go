package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// MinPasswordLength applies to every staff account
const MinPasswordLength = 8

// userService implements the UserService interface
type userService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	logger       *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
	logger *slog.Logger,
) driving.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		logger:       logger,
	}
}

// EnsureAdmin seeds the first admin from configuration. An existing account
// with the same email is left untouched, password included.
func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normaliseEmail(email)
	if email == "" || password == "" {
		return false, domain.ErrInvalidInput
	}

	_, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	if _, err := s.Create(ctx, driving.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     "Administrator",
		Role:     domain.RoleAdmin,
	}); err != nil {
		return false, err
	}
	s.logger.Info("seeded admin account", "email", email)
	return true, nil
}

// Create creates a new staff account
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	email := normaliseEmail(req.Email)
	if existing, _ := s.userStore.GetByEmail(ctx, email); existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List retrieves all staff accounts
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Delete removes an account and its sessions. The last admin cannot be deleted.
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdmin {
		users, err := s.userStore.List(ctx)
		if err != nil {
			return err
		}
		admins := 0
		for _, u := range users {
			if u.Role == domain.RoleAdmin && u.Active {
				admins++
			}
		}
		if admins <= 1 {
			return domain.ErrForbidden
		}
	}

	_ = s.sessionStore.DeleteByUser(ctx, user.ID)
	return s.userStore.Delete(ctx, id)
}

func validateCreateRequest(req driving.CreateUserRequest) error {
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return domain.ErrInvalidInput
	}
	if len(req.Password) < MinPasswordLength {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.ErrInvalidInput
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleReviewer {
		return domain.ErrInvalidInput
	}
	return nil
}
