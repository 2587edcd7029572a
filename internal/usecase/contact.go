package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/infra/logger"
	"github.com/arklim/contact-platform/internal/repository"
	"github.com/arklim/contact-platform/internal/validation"
)

// ContactService handles the contact lifecycle for an authenticated user.
type ContactService struct {
	contacts port.ContactRepository
	log      *zap.Logger
}

// NewContactService constructs ContactService.
func NewContactService(contacts port.ContactRepository, log *zap.Logger) *ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{contacts: contacts, log: log}
}

// EnsureExists is the reusable ownership guard: it returns the contact
// only when it exists AND is owned by username, otherwise ErrContactNotFound.
// The address service runs this before any address lookup.
func (s *ContactService) EnsureExists(ctx context.Context, username string, contactID int64) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, username, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("lookup contact: %w", err)
	}
	return contact, nil
}

// Create persists a new contact owned by the authenticated user.
func (s *ContactService) Create(ctx context.Context, user domain.User, input CreateContactInput) (*ContactResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	contact := domain.Contact{
		Username:  user.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	id, err := s.contacts.Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	contact.ID = id

	s.log.Info("contact created",
		zap.String("username", user.Username),
		zap.Int64("contact_id", id),
		zap.String("email", logger.MaskEmail(stringValue(contact.Email))),
		zap.String("phone", logger.MaskPhone(stringValue(contact.Phone))),
	)

	return toContactResource(contact), nil
}

// Get returns one contact owned by the user.
func (s *ContactService) Get(ctx context.Context, user domain.User, id int64) (*ContactResource, error) {
	contact, err := s.EnsureExists(ctx, user.Username, id)
	if err != nil {
		return nil, err
	}
	return toContactResource(*contact), nil
}

// Update persists changed fields of an owned contact. Optional fields
// absent from the input keep their stored values.
func (s *ContactService) Update(ctx context.Context, user domain.User, input UpdateContactInput) (*ContactResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	existing, err := s.EnsureExists(ctx, user.Username, input.ID)
	if err != nil {
		return nil, err
	}

	contact := domain.Contact{
		ID:        input.ID,
		Username:  user.Username,
		FirstName: input.FirstName,
		LastName:  existing.LastName,
		Email:     existing.Email,
		Phone:     existing.Phone,
	}
	if input.LastName != nil {
		contact.LastName = input.LastName
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.Phone != nil {
		contact.Phone = input.Phone
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}

	return toContactResource(contact), nil
}

// Remove hard-deletes an owned contact.
func (s *ContactService) Remove(ctx context.Context, user domain.User, id int64) error {
	if _, err := s.EnsureExists(ctx, user.Username, id); err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, user.Username, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}

	s.log.Info("contact deleted",
		zap.String("username", user.Username),
		zap.Int64("contact_id", id),
	)
	return nil
}

// Search returns one page of the user's contacts matching the filters.
// total_page is ceil(total/size), and 0 when nothing matches. Page and
// Size must already be resolved by the caller; zero is rejected.
func (s *ContactService) Search(ctx context.Context, user domain.User, input SearchContactsInput) (*ContactPage, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	filter := port.ContactFilter{
		Username: user.Username,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Limit:    input.Size,
		Offset:   (input.Page - 1) * input.Size,
	}

	contacts, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	total, err := s.contacts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}

	data := make([]ContactResource, 0, len(contacts))
	for _, contact := range contacts {
		data = append(data, *toContactResource(contact))
	}

	totalPage := 0
	if total > 0 {
		totalPage = (total + input.Size - 1) / input.Size
	}

	return &ContactPage{
		Data: data,
		Paging: PageMeta{
			CurrentPage: input.Page,
			TotalPage:   totalPage,
			Size:        input.Size,
		},
	}, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
