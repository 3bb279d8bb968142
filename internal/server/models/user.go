// Package models holds the persistent data model: user identity records and
// the owner-partitioned entities (applications, supporting documents, notes).
package models

import "time"

// User is an identity record keyed by email. Created once at registration
// and immutable afterwards.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PhoneNumber  string    `json:"phoneNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}
