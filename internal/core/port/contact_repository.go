package port

import (
	"context"

	"github.com/arklim/contact-platform/internal/core/domain"
)

// ContactFilter narrows contact listing.
//
// Username is mandatory; all lookups are scoped to the owning user.
// Name matches first or last name case-insensitively, Email and Phone
// are case-insensitive substring matches. Filters are combined with AND.
type ContactFilter struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Limit    int
	Offset   int
}

// ContactRepository exposes persistence behavior for contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact domain.Contact) (int64, error)
	GetByID(ctx context.Context, username string, id int64) (*domain.Contact, error)
	Update(ctx context.Context, contact domain.Contact) error
	Delete(ctx context.Context, username string, id int64) error
	List(ctx context.Context, filter ContactFilter) ([]domain.Contact, error)
	Count(ctx context.Context, filter ContactFilter) (int, error)
}
