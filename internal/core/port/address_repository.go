package port

import (
	"context"

	"github.com/arklim/contact-platform/internal/core/domain"
)

// AddressRepository exposes persistence behavior for addresses.
// Every lookup is scoped by contact id so an address matching the id but
// not the contact behaves as not found.
type AddressRepository interface {
	Create(ctx context.Context, address domain.Address) (int64, error)
	GetByID(ctx context.Context, contactID, addressID int64) (*domain.Address, error)
	ListByContact(ctx context.Context, contactID int64) ([]domain.Address, error)
	Update(ctx context.Context, address domain.Address) error
	Delete(ctx context.Context, contactID, addressID int64) error
}
