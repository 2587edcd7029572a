package usecase

import "github.com/arklim/contact-platform/internal/core/domain"

// RegisterUserInput captures the payload for account registration.
type RegisterUserInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserInput captures login credentials.
type LoginUserInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserInput is a partial update; nil means the field is untouched,
// a present-but-empty value is rejected by validation.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1,max=100"`
}

// UserResource is the public projection of a user. The password hash
// never leaves the service layer; Token is only set on login responses.
type UserResource struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

func toUserResource(user domain.User) *UserResource {
	return &UserResource{
		Username: user.Username,
		Name:     user.Name,
	}
}

// CreateContactInput captures the payload for contact creation.
type CreateContactInput struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=20"`
}

// UpdateContactInput captures a contact update; the id comes from the path.
type UpdateContactInput struct {
	ID        int64   `json:"-" validate:"required,gt=0"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=20"`
}

// SearchContactsInput captures pagination and the optional filters.
// Filters are combined with AND; the name filter alone matches first OR
// last name.
type SearchContactsInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Page  int    `json:"page" validate:"gte=1"`
	Size  int    `json:"size" validate:"gte=1,lte=100"`
}

// ContactResource is the public projection of a contact.
type ContactResource struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func toContactResource(contact domain.Contact) *ContactResource {
	return &ContactResource{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}

// PageMeta describes the paging envelope returned by search operations.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	TotalPage   int `json:"total_page"`
	Size        int `json:"size"`
}

// ContactPage is one page of search results plus paging metadata.
type ContactPage struct {
	Data   []ContactResource
	Paging PageMeta
}

// CreateAddressInput captures the payload for address creation.
// The contact id comes from the path, never from the body.
type CreateAddressInput struct {
	ContactID  int64   `json:"-" validate:"required,gt=0"`
	Street     *string `json:"street" validate:"omitempty,min=1,max=255"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	Province   *string `json:"province" validate:"omitempty,min=1,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=10"`
}

// GetAddressInput identifies one address under an owned contact.
type GetAddressInput struct {
	ContactID int64 `json:"-" validate:"required,gt=0"`
	AddressID int64 `json:"-" validate:"required,gt=0"`
}

// UpdateAddressInput captures an address update; both ids come from the path.
type UpdateAddressInput struct {
	ContactID  int64   `json:"-" validate:"required,gt=0"`
	AddressID  int64   `json:"-" validate:"required,gt=0"`
	Street     *string `json:"street" validate:"omitempty,min=1,max=255"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	Province   *string `json:"province" validate:"omitempty,min=1,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=10"`
}

// AddressResource is the public projection of an address.
type AddressResource struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
}

func toAddressResource(address domain.Address) *AddressResource {
	return &AddressResource{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}
