package domain

// Address belongs to a single contact and is only reachable through the
// (contact_id, address_id) pair scoped to the contact's owner.
type Address struct {
	ID         int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}
