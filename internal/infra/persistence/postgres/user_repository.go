// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where(query, arg).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. A taken email yields repository.ErrUserAlreadyExists.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUserAlreadyExists
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.JoinedOn = userM.CreatedAt

	return nil
}

// Update replaces every mutable column of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(userM).Select("*").Omit("created_at").Updates(userM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrUserAlreadyExists
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		DateOfBirth:         m.DateOfBirth,
		Email:               m.Email,
		EmailVerified:       m.EmailVerified,
		PhoneNumber:         m.PhoneNumber,
		Picture:             m.Picture,
		IsSeller:            m.IsSeller,
		JoinedOn:            m.CreatedAt,
		Addresses:           []entity.Address(m.Addresses),
		Password:            m.Password,
		GoogleID:            m.GoogleID,
		GoogleRefreshToken:  m.GoogleRefreshToken,
		FacebookID:          m.FacebookID,
		FacebookAccessToken: m.FacebookAccessToken,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		DateOfBirth:         u.DateOfBirth,
		EmailVerified:       u.EmailVerified,
		PhoneNumber:         u.PhoneNumber,
		Picture:             u.Picture,
		IsSeller:            u.IsSeller,
		Password:            u.Password,
		GoogleID:            u.GoogleID,
		GoogleRefreshToken:  u.GoogleRefreshToken,
		FacebookID:          u.FacebookID,
		FacebookAccessToken: u.FacebookAccessToken,
		Addresses:           u.Addresses,
		CreatedAt:           u.JoinedOn,
	}
}
