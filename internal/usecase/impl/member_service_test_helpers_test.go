package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"board/internal/domain/entity"
	domainerrors "board/internal/domain/errors"
	"board/internal/domain/repository"
	"board/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeMemberRepo is an in-memory MemberRepository for service tests.
type fakeMemberRepo struct {
	members map[int]*entity.Member
	nextID  int

	// failWith, when set, is returned by every operation to simulate a store fault.
	failWith error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int]*entity.Member{}, nextID: 1}
}

func (r *fakeMemberRepo) Insert(_ context.Context, member *entity.Member) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}

	for _, m := range r.members {
		if m.Email == member.Email || m.NickName == member.NickName {
			return 0, domainerrors.ErrEmailAlreadyExists
		}
	}

	stored := *member
	stored.ID = r.nextID
	r.nextID++
	r.members[stored.ID] = &stored

	member.ID = stored.ID

	return 1, nil
}

func (r *fakeMemberRepo) FindByEmail(_ context.Context, email string) (*entity.Member, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, m := range r.members {
		if m.Email == email {
			copied := *m

			return &copied, nil
		}
	}

	return nil, repository.ErrMemberNotFound
}

func (r *fakeMemberRepo) FindByNickName(_ context.Context, nickName string) (*entity.Member, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, m := range r.members {
		if m.NickName == nickName {
			copied := *m

			return &copied, nil
		}
	}

	return nil, repository.ErrMemberNotFound
}

func (r *fakeMemberRepo) ListAll(_ context.Context) ([]*entity.Member, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	members := make([]*entity.Member, 0, len(r.members))
	for id := 1; id < r.nextID; id++ {
		if m, ok := r.members[id]; ok {
			copied := *m
			copied.Password = "" // listing projection excludes the hash
			members = append(members, &copied)
		}
	}

	return members, nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id int) (*entity.Member, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	m, ok := r.members[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	copied := *m

	return &copied, nil
}

func (r *fakeMemberRepo) DeleteByID(_ context.Context, id int) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}

	if _, ok := r.members[id]; !ok {
		return 0, nil
	}
	delete(r.members, id)

	return 1, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *entity.Member) error {
	if r.failWith != nil {
		return r.failWith
	}

	stored, ok := r.members[member.ID]
	if !ok {
		return nil
	}
	stored.Password = member.Password
	stored.NickName = member.NickName

	return nil
}

// fakeTxFactory binds the fake repository into the RepositoryFactory contract.
type fakeTxFactory struct {
	repo repository.MemberRepository
}

func (f *fakeTxFactory) MemberRepo() repository.MemberRepository {
	return f.repo
}

// fakeTxManager runs the callback against the shared fake repository,
// standing in for a real transaction scope.
type fakeTxManager struct {
	repo repository.MemberRepository
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeTxFactory{repo: m.repo})
}

// fakeHasher is a deterministic PasswordHasher substitute.
type fakeHasher struct{}

const fakeHashPrefix = "hashed:"

func (fakeHasher) Hash(password string) (string, error) {
	return fakeHashPrefix + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return strings.TrimPrefix(hash, fakeHashPrefix) == password && strings.HasPrefix(hash, fakeHashPrefix)
}

// fakeIssuer records the last claim set it signed.
type fakeIssuer struct {
	lastClaims *service.TokenClaims
	signErr    error
}

func (i *fakeIssuer) Sign(claims *service.TokenClaims) (string, error) {
	if i.signErr != nil {
		return "", i.signErr
	}
	i.lastClaims = claims

	return "signed-token", nil
}

func (i *fakeIssuer) Parse(string) (*service.TokenClaims, error) {
	return i.lastClaims, nil
}
