// Package usecase defines the application's business-logic interfaces.
package usecase

import (
	"context"

	"board/internal/domain/entity"
)

// MemberUsecase defines the business operations over member accounts.
//
// Lookup operations return (nil, nil) when no record exists; "not found" is a
// normal outcome for callers, not a fault. Store and infrastructure failures
// propagate as errors and abort the enclosing transaction.
type MemberUsecase interface {
	// Add registers a new member. It trims Email and NickName and replaces
	// Password with its hash in place on the caller's record before persisting.
	Add(ctx context.Context, member *entity.Member) error

	// Validate reports whether the member carries a non-blank email, nickname
	// and password, and a syntactically valid email address. Pure; no
	// persistence access.
	Validate(member *entity.Member) bool

	// GetByEmail returns the member matching the trimmed email, or nil.
	GetByEmail(ctx context.Context, email string) (*entity.Member, error)

	// GetByNickName returns the member matching the trimmed nickname, or nil.
	GetByNickName(ctx context.Context, nickName string) (*entity.Member, error)

	// List returns all members ordered by ascending id, without password hashes.
	List(ctx context.Context) ([]*entity.Member, error)

	// GetByID returns the member matching id, or nil.
	GetByID(ctx context.Context, id int) (*entity.Member, error)

	// Remove deletes the member by id. Removing a missing id is a no-op success.
	Remove(ctx context.Context, id int) error

	// HasAccess reports whether member.Password (plaintext) verifies against
	// the stored hash for member.ID. False when the record is absent.
	HasAccess(ctx context.Context, member *entity.Member) (bool, error)

	// Modify updates nickname and, when a new password is supplied, the
	// password hash. An empty password means "no change".
	Modify(ctx context.Context, member *entity.Member) error

	// HasAccessModify reports whether member.OldPassword verifies against the
	// stored hash for member.ID. Gate for credential-changing Modify calls.
	HasAccessModify(ctx context.Context, member *entity.Member) (bool, error)

	// GetToken authenticates by email and plaintext password and, on success,
	// returns a result map with the signed bearer token under the "token" key.
	// Unknown email and wrong password both yield (nil, nil).
	GetToken(ctx context.Context, member *entity.Member) (map[string]string, error)
}
