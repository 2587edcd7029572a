package port

import (
	"context"

	"github.com/arklim/contact-platform/internal/core/domain"
)

// UserRepository exposes persistence behavior for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
	Update(ctx context.Context, user domain.User) error
	UpdateToken(ctx context.Context, username string, token *string) error
}
