// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"board/internal/domain/entity"
)

// ErrMemberNotFound is a domain-specific error returned when a member row does not exist.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepository defines the standard operations for member persistence.
// The application layer depends on this interface, not the concrete implementation.
type MemberRepository interface {
	// Insert persists a new member record. The password must already be hashed
	// by the caller. Returns the number of rows affected.
	Insert(ctx context.Context, member *entity.Member) (int64, error)

	// FindByEmail retrieves the full record, including the password hash,
	// by exact match on the normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)

	// FindByNickName retrieves the full record by exact match on the nickname.
	FindByNickName(ctx context.Context, nickName string) (*entity.Member, error)

	// ListAll returns all members ordered by ascending id.
	// The projection excludes the password column.
	ListAll(ctx context.Context) ([]*entity.Member, error)

	// FindByID retrieves the full record, including the password hash.
	FindByID(ctx context.Context, id int) (*entity.Member, error)

	// DeleteByID removes the row matching id and returns the number of rows
	// affected. Deleting a missing id affects zero rows and is not an error.
	DeleteByID(ctx context.Context, id int) (int64, error)

	// Update overwrites password and nick_name for the row matching the
	// member's id. Email and id are never touched.
	Update(ctx context.Context, member *entity.Member) error
}
