package domain

// User mirrors the persisted representation in the users table.
// Username is the primary key and immutable once created. Token holds
// the current opaque session token and is NULL while logged out.
type User struct {
	Username     string
	Name         string
	PasswordHash string
	Token        *string
}
