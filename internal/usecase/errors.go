package usecase

import "errors"

var (
	// ErrUsernameTaken indicates the username is already registered (exact, case-sensitive match).
	ErrUsernameTaken = errors.New("username already registered")
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so a caller cannot enumerate registered usernames.
	ErrInvalidCredentials = errors.New("username or password is wrong")
	// ErrUnauthorized indicates a missing or unresolvable session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrContactNotFound indicates no contact with that id is owned by the requesting user.
	ErrContactNotFound = errors.New("contact is not found")
	// ErrAddressNotFound indicates no address with that id exists under the given contact.
	ErrAddressNotFound = errors.New("address is not found")
)
