package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/repository"
	"github.com/arklim/contact-platform/internal/validation"
)

// AddressService handles addresses nested under a user's contacts.
//
// Ownership is two-level: every operation runs the contact ownership
// guard before touching the address table, so probing a contact you do
// not own never reveals whether an address id exists under it.
type AddressService struct {
	addresses port.AddressRepository
	contacts  *ContactService
	log       *zap.Logger
}

// NewAddressService constructs AddressService.
func NewAddressService(addresses port.AddressRepository, contacts *ContactService, log *zap.Logger) *AddressService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AddressService{addresses: addresses, contacts: contacts, log: log}
}

func (s *AddressService) ensureAddressExists(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	address, err := s.addresses.GetByID(ctx, contactID, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("lookup address: %w", err)
	}
	return address, nil
}

// Create persists a new address under an owned contact.
func (s *AddressService) Create(ctx context.Context, user domain.User, input CreateAddressInput) (*AddressResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.contacts.EnsureExists(ctx, user.Username, input.ContactID); err != nil {
		return nil, err
	}

	address := domain.Address{
		ContactID:  input.ContactID,
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	}

	id, err := s.addresses.Create(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	address.ID = id

	s.log.Info("address created",
		zap.String("username", user.Username),
		zap.Int64("contact_id", input.ContactID),
		zap.Int64("address_id", id),
	)

	return toAddressResource(address), nil
}

// Get returns one address scoped by the (contact, address) pair.
func (s *AddressService) Get(ctx context.Context, user domain.User, input GetAddressInput) (*AddressResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.contacts.EnsureExists(ctx, user.Username, input.ContactID); err != nil {
		return nil, err
	}

	address, err := s.ensureAddressExists(ctx, input.ContactID, input.AddressID)
	if err != nil {
		return nil, err
	}

	return toAddressResource(*address), nil
}

// List returns every address of an owned contact.
func (s *AddressService) List(ctx context.Context, user domain.User, contactID int64) ([]AddressResource, error) {
	if _, err := s.contacts.EnsureExists(ctx, user.Username, contactID); err != nil {
		return nil, err
	}

	addresses, err := s.addresses.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	resources := make([]AddressResource, 0, len(addresses))
	for _, address := range addresses {
		resources = append(resources, *toAddressResource(address))
	}
	return resources, nil
}

// Update persists changes to an address after both ownership guards
// pass. Optional fields absent from the input keep their stored values.
func (s *AddressService) Update(ctx context.Context, user domain.User, input UpdateAddressInput) (*AddressResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.contacts.EnsureExists(ctx, user.Username, input.ContactID); err != nil {
		return nil, err
	}

	existing, err := s.ensureAddressExists(ctx, input.ContactID, input.AddressID)
	if err != nil {
		return nil, err
	}

	address := domain.Address{
		ID:         input.AddressID,
		ContactID:  input.ContactID,
		Street:     existing.Street,
		City:       existing.City,
		Province:   existing.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	}
	if input.Street != nil {
		address.Street = input.Street
	}
	if input.City != nil {
		address.City = input.City
	}
	if input.Province != nil {
		address.Province = input.Province
	}

	if err := s.addresses.Update(ctx, address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}

	return toAddressResource(address), nil
}

// Remove hard-deletes one address under an owned contact.
func (s *AddressService) Remove(ctx context.Context, user domain.User, input GetAddressInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	if _, err := s.contacts.EnsureExists(ctx, user.Username, input.ContactID); err != nil {
		return err
	}

	if _, err := s.ensureAddressExists(ctx, input.ContactID, input.AddressID); err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, input.ContactID, input.AddressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAddressNotFound
		}
		return fmt.Errorf("delete address: %w", err)
	}

	s.log.Info("address deleted",
		zap.String("username", user.Username),
		zap.Int64("contact_id", input.ContactID),
		zap.Int64("address_id", input.AddressID),
	)
	return nil
}
