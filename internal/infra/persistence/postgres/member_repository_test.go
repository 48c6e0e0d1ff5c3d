package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"board/internal/domain/entity"
	domainerrors "board/internal/domain/errors"
	"board/internal/domain/repository"
	"board/internal/infra/persistence/model"
)

// newTestDB opens an in-memory sqlite database with GORM error translation,
// which is enough to exercise the repository contract without PostgreSQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.MemberModel{}))

	return db
}

func seedMember(t *testing.T, repo repository.MemberRepository, email, nick string) *entity.Member {
	t.Helper()

	member := &entity.Member{
		Email:    email,
		Password: "$2a$10$fakehashfakehashfakehash",
		NickName: nick,
		MemberID: email,
	}
	rows, err := repo.Insert(context.Background(), member)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	return member
}

func TestMemberRepository_InsertAssignsIDAndInserted(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))

	member := seedMember(t, repo, "a@b.com", "nick")

	assert.NotZero(t, member.ID)
	assert.False(t, member.Inserted.IsZero())
}

func TestMemberRepository_InsertDuplicateEmail(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))

	seedMember(t, repo, "a@b.com", "nick")

	_, err := repo.Insert(context.Background(), &entity.Member{
		Email:    "a@b.com",
		Password: "hash",
		NickName: "other",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestMemberRepository_FindByEmail(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	ctx := context.Background()

	seeded := seedMember(t, repo, "a@b.com", "nick")

	found, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "nick", found.NickName)
	// The full record includes the stored hash.
	assert.NotEmpty(t, found.Password)

	_, err = repo.FindByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestMemberRepository_FindByNickName(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	ctx := context.Background()

	seedMember(t, repo, "a@b.com", "nick")

	found, err := repo.FindByNickName(ctx, "nick")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", found.Email)

	_, err = repo.FindByNickName(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestMemberRepository_ListAllOrderedWithoutPassword(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	ctx := context.Background()

	seedMember(t, repo, "b@b.com", "second")
	seedMember(t, repo, "a@b.com", "first")

	members, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// Ordered by ascending id, regardless of insertion naming.
	assert.Less(t, members[0].ID, members[1].ID)

	// The listing projection excludes the password column.
	for _, m := range members {
		assert.Empty(t, m.Password)
		assert.NotEmpty(t, m.Email)
		assert.False(t, m.Inserted.IsZero())
	}
}

func TestMemberRepository_DeleteByID(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	ctx := context.Background()

	member := seedMember(t, repo, "a@b.com", "nick")

	rows, err := repo.DeleteByID(ctx, member.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = repo.FindByID(ctx, member.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)

	// Deleting a missing id affects zero rows and is not an error.
	rows, err = repo.DeleteByID(ctx, member.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestMemberRepository_UpdateTouchesOnlyPasswordAndNickName(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	ctx := context.Background()

	member := seedMember(t, repo, "a@b.com", "nick")

	member.Password = "newhash"
	member.NickName = "renamed"
	member.Email = "ignored@b.com" // must not be written
	require.NoError(t, repo.Update(ctx, member))

	stored, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", stored.Password)
	assert.Equal(t, "renamed", stored.NickName)
	assert.Equal(t, "a@b.com", stored.Email)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	txManager := NewTransactionManager(db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if _, err := factory.MemberRepo().Insert(ctx, &entity.Member{
			Email:    "a@b.com",
			Password: "hash",
			NickName: "nick",
		}); err != nil {
			return err
		}

		return assert.AnError
	})
	require.Error(t, err)

	// The insert must not survive the rollback.
	_, err = repo.FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	txManager := NewTransactionManager(db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		_, err := factory.MemberRepo().Insert(ctx, &entity.Member{
			Email:    "a@b.com",
			Password: "hash",
			NickName: "nick",
		})

		return err
	})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "nick", found.NickName)
}
