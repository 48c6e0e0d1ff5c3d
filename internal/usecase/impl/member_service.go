// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "board/internal/delivery/context"
	"board/internal/domain/entity"
	"board/internal/domain/repository"
	"board/internal/domain/service"
	"board/internal/usecase"
)

const (
	// tokenIssuer is the fixed self-identifier placed in the iss claim.
	tokenIssuer = "self"

	// tokenTTL is the fixed validity window of issued tokens.
	tokenTTL = 7 * 24 * time.Hour
)

// emailPattern matches a dot-separated DNS-label sequence after the local part.
// Each label is alphanumeric at both ends, at most 63 characters.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// memberService implements the MemberUsecase interface.
type memberService struct {
	txManager  repository.TransactionManager
	memberRepo repository.MemberRepository
	hasher     service.PasswordHasher
	issuer     service.TokenIssuer
	logger     *slog.Logger
}

// MemberServiceParams holds dependencies for MemberService, injected by Fx.
type MemberServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	MemberRepo repository.MemberRepository
	Hasher     service.PasswordHasher
	Issuer     service.TokenIssuer
	Logger     *slog.Logger
}

// NewMemberService is the constructor for memberService. It receives all dependencies as interfaces.
func NewMemberService(params MemberServiceParams) usecase.MemberUsecase {
	return &memberService{
		txManager:  params.TxManager,
		memberRepo: params.MemberRepo,
		hasher:     params.Hasher,
		issuer:     params.Issuer,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *memberService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add registers a new member. The caller's record is normalized and its
// password replaced with the hash in place before it is persisted.
func (srv *memberService) Add(ctx context.Context, member *entity.Member) error {
	srv.log(ctx).Info("Registering member", slog.String("email", member.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashed, err := srv.hasher.Hash(member.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password during registration")
	}

	member.Email = strings.TrimSpace(member.Email)
	member.NickName = strings.TrimSpace(member.NickName)
	member.Password = hashed

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.MemberRepo().Insert(ctx, member); err != nil {
			return errors.Wrap(err, "failed to insert member")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Error("Failed to execute member registration transaction", slog.String("email", member.Email), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Member registered", slog.Int("id", member.ID))

	return nil
}

// Validate checks the member's registration fields. Pure; no persistence access.
func (srv *memberService) Validate(member *entity.Member) bool {
	if strings.TrimSpace(member.Email) == "" {
		return false
	}
	if strings.TrimSpace(member.NickName) == "" {
		return false
	}
	if strings.TrimSpace(member.Password) == "" {
		return false
	}

	return emailPattern.MatchString(strings.TrimSpace(member.Email))
}

// GetByEmail returns the member matching the trimmed email, or nil when absent.
func (srv *memberService) GetByEmail(ctx context.Context, email string) (*entity.Member, error) {
	member, err := srv.memberRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get member by email")
	}

	return member, nil
}

// GetByNickName returns the member matching the trimmed nickname, or nil when absent.
func (srv *memberService) GetByNickName(ctx context.Context, nickName string) (*entity.Member, error) {
	member, err := srv.memberRepo.FindByNickName(ctx, strings.TrimSpace(nickName))
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get member by nickname")
	}

	return member, nil
}

// List returns all members ordered by ascending id, without password hashes.
func (srv *memberService) List(ctx context.Context) ([]*entity.Member, error) {
	members, err := srv.memberRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list members")
	}

	return members, nil
}

// GetByID returns the member matching id, or nil when absent.
func (srv *memberService) GetByID(ctx context.Context, id int) (*entity.Member, error) {
	member, err := srv.memberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get member by id")
	}

	return member, nil
}

// Remove deletes the member by id. No existence check; deleting a missing id
// affects zero rows and succeeds.
func (srv *memberService) Remove(ctx context.Context, id int) error {
	srv.log(ctx).Info("Removing member", slog.Int("id", id))

	if _, err := srv.memberRepo.DeleteByID(ctx, id); err != nil {
		return errors.Wrap(err, "failed to remove member")
	}

	return nil
}

// HasAccess verifies the member's plaintext password against the stored hash.
func (srv *memberService) HasAccess(ctx context.Context, member *entity.Member) (bool, error) {
	stored, err := srv.memberRepo.FindByID(ctx, member.ID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to load member for access check")
	}

	return srv.hasher.Check(member.Password, stored.Password), nil
}

// Modify updates nickname and, when a new password is supplied, the password
// hash. An empty password carries the stored hash forward unchanged.
func (srv *memberService) Modify(ctx context.Context, member *entity.Member) error {
	srv.log(ctx).Info("Modifying member", slog.Int("id", member.ID))

	if member.Password != "" {
		// A new password was supplied; replace the stored hash.
		hashed, err := srv.hasher.Hash(member.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during modify")
		}
		member.Password = hashed
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.MemberRepo()

		if member.Password == "" {
			// No password supplied; keep the existing hash.
			stored, err := memberRepo.FindByID(ctx, member.ID)
			if err != nil {
				return errors.Wrap(err, "failed to load member for modify")
			}
			member.Password = stored.Password
		}

		if err := memberRepo.Update(ctx, member); err != nil {
			return errors.Wrap(err, "failed to update member")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Error("Failed to execute member modify transaction", slog.Int("id", member.ID), slog.Any("error", err))

		return err
	}

	return nil
}

// HasAccessModify verifies the caller-supplied current password before a
// credential change. False when the record is absent or the password mismatches.
func (srv *memberService) HasAccessModify(ctx context.Context, member *entity.Member) (bool, error) {
	stored, err := srv.memberRepo.FindByID(ctx, member.ID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to load member for modify access check")
	}

	if !srv.hasher.Check(member.OldPassword, stored.Password) {
		return false, nil
	}

	return true, nil
}

// GetToken authenticates by email and issues a signed bearer token.
// Unknown email and wrong password are indistinguishable: both return (nil, nil)
// so callers cannot probe for account existence.
func (srv *memberService) GetToken(ctx context.Context, member *entity.Member) (map[string]string, error) {
	stored, err := srv.memberRepo.FindByEmail(ctx, member.Email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			srv.log(ctx).Warn("Token request for unknown email", slog.String("email", member.Email))

			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load member for token issuance")
	}

	if !srv.hasher.Check(member.Password, stored.Password) {
		srv.log(ctx).Warn("Token request with wrong password", slog.String("email", member.Email))

		return nil, nil
	}

	now := time.Now()
	token, err := srv.issuer.Sign(&service.TokenClaims{
		Issuer:    tokenIssuer,
		Subject:   member.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenTTL),
		Scope:     "", // authorization scopes are a placeholder, not populated
		NickName:  stored.NickName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	srv.log(ctx).Debug("Issued token", slog.String("email", member.Email))

	return map[string]string{"token": token}, nil
}
