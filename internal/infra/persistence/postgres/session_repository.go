package postgres

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a GORM-backed session repository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := &model.SessionModel{
		ID:         session.ID,
		UserID:     session.UserID,
		Provider:   session.Provider.String(),
		DeviceInfo: datatypes.NewJSONType(session.DeviceInfo),
		CreatedAt:  session.CreatedAt,
		ExpiresAt:  session.ExpiresAt,
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return nil
}

func (repo *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	return &entity.Session{
		ID:         sessionM.ID,
		UserID:     sessionM.UserID,
		DeviceInfo: sessionM.DeviceInfo.Data(),
		Provider:   entity.Provider(sessionM.Provider),
		CreatedAt:  sessionM.CreatedAt,
		ExpiresAt:  sessionM.ExpiresAt,
	}, nil
}

// Delete removes the session row; zero affected rows is not an error.
func (repo *sessionRepository) Delete(ctx context.Context, id string) error {
	err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SessionModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
