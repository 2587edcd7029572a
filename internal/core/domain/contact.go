package domain

// Contact is owned by exactly one user; Username is the owning foreign key.
type Contact struct {
	ID        int64
	Username  string
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}
