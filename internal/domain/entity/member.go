// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Member is the persisted account record of the board.
// Email is the login identifier; NickName is the unique display name.
type Member struct {
	ID       int       // Surrogate primary key, assigned by the store on creation.
	Email    string    // Unique login identifier, trimmed before storage and lookup.
	Password string    // Holds the bcrypt digest once the record leaves the service layer, never plaintext.
	NickName string    // Unique display name, trimmed before storage.
	MemberID string    // Externally supplied identifier, captured at insert time only.
	Inserted time.Time // Set by the store at creation, never mutated.

	// OldPassword carries the caller-supplied current password during a
	// modify-credential request. It is never persisted.
	OldPassword string
}
