// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"board/internal/domain/entity"
	domainerrors "board/internal/domain/errors"
	"board/internal/domain/repository"
	"board/internal/infra/persistence/model"
)

// memberRepository implements the repository.MemberRepository interface.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository is the constructor for memberRepository.
func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{
		db: db,
	}
}

// Insert persists a new member record. Only email, password and member_id are
// supplied by the caller; id and inserted are assigned by the store.
func (repo *memberRepository) Insert(ctx context.Context, member *entity.Member) (int64, error) {
	memberM := fromMemberDomain(member)

	result := repo.db.WithContext(ctx).Create(memberM)
	if result.Error != nil {
		// Convert constraint violations to domain errors
		if isUniqueConstraintViolation(result.Error) {
			return 0, domainerrors.ErrEmailAlreadyExists.WrapMessage("email or nickname already registered")
		}
		if isNotNullConstraintViolation(result.Error) {
			return 0, domainerrors.ErrMemberCreationFailed.WrapMessage("missing required member information")
		}

		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to insert member")
	}

	// Propagate store-assigned values back to the entity.
	member.ID = memberM.ID
	member.Inserted = memberM.Inserted

	return result.RowsAffected, nil
}

// FindByEmail retrieves the full record, including the password hash.
func (repo *memberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var memberM model.MemberModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by email")
	}

	return toMemberDomain(&memberM), nil
}

// FindByNickName retrieves the full record by exact nickname match.
func (repo *memberRepository) FindByNickName(ctx context.Context, nickName string) (*entity.Member, error) {
	var memberM model.MemberModel

	if err := repo.db.WithContext(ctx).
		Where("nick_name = ?", nickName).
		First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by nickname")
	}

	return toMemberDomain(&memberM), nil
}

// ListAll returns all members ordered by ascending id.
// The password column is excluded from the projection.
func (repo *memberRepository) ListAll(ctx context.Context) ([]*entity.Member, error) {
	var memberModels []*model.MemberModel

	if err := repo.db.WithContext(ctx).
		Select("id", "email", "nick_name", "inserted").
		Order("id ASC").
		Find(&memberModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list members")
	}

	members := make([]*entity.Member, 0, len(memberModels))
	for _, memberM := range memberModels {
		members = append(members, toMemberDomain(memberM))
	}

	return members, nil
}

// FindByID retrieves the full record, including the password hash.
func (repo *memberRepository) FindByID(ctx context.Context, id int) (*entity.Member, error) {
	var memberM model.MemberModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by id")
	}

	return toMemberDomain(&memberM), nil
}

// DeleteByID removes the row matching id. Zero rows affected is not an error.
func (repo *memberRepository) DeleteByID(ctx context.Context, id int) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MemberModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete member")
	}

	return result.RowsAffected, nil
}

// Update overwrites password and nick_name for the row matching the member's id.
func (repo *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MemberModel{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"password":  member.Password,
			"nick_name": member.NickName,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrNickNameAlreadyExists.WrapMessage("nickname already taken")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update member")
	}

	return nil
}

// --- Mapper Functions ---

// toMemberDomain converts a GORM MemberModel to a domain Member entity.
func toMemberDomain(data *model.MemberModel) *entity.Member {
	if data == nil {
		return nil
	}

	return &entity.Member{
		ID:       data.ID,
		Email:    data.Email,
		Password: data.Password,
		NickName: data.NickName,
		MemberID: data.MemberID,
		Inserted: data.Inserted,
	}
}

// fromMemberDomain converts a domain Member entity to a GORM MemberModel for persistence.
func fromMemberDomain(data *entity.Member) *model.MemberModel {
	if data == nil {
		return nil
	}

	return &model.MemberModel{
		ID:       data.ID,
		Email:    data.Email,
		Password: data.Password,
		NickName: data.NickName,
		MemberID: data.MemberID,
	}
}
