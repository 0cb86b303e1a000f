package driving

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// CreateUserRequest represents a request to create a staff account
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// UserService manages staff accounts
type UserService interface {
	// EnsureAdmin creates the first admin when no account with that email
	// exists. Returns true when an account was created.
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)

	// Create creates a staff account (admin only)
	Create(ctx context.Context, req CreateUserRequest) (*domain.User, error)

	// List retrieves all staff accounts
	List(ctx context.Context) ([]*domain.User, error)

	// Delete deletes a staff account (admin only)
	Delete(ctx context.Context, id string) error
}
