package security

import "github.com/google/uuid"

// NewSessionToken returns a fresh opaque session token.
//
// The token carries no decodable structure; it is only ever used as a
// lookup key against the user's stored token column. A new one is
// generated on every login so no two active sessions share a token.
func NewSessionToken() string {
	return uuid.NewString()
}
