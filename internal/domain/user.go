package domain

import "time"

// User is a registered account holder. PasswordDigest is never serialized
// to the API layer — handlers map User to a response type without it.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}

// Profile bundles a user with all owned resources, mirroring the
// "full profile" read the API exposes.
type Profile struct {
	User         User
	Accounts     []Account
	Categories   []Category
	Transactions []Transaction
}
