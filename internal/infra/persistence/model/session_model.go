package model

import (
	"time"

	"himart/internal/domain/entity"

	"gorm.io/datatypes"
)

// SessionModel mirrors the 'sessions' table.
type SessionModel struct {
	ID         string `gorm:"type:varchar(64);primaryKey"`
	UserID     string `gorm:"type:varchar(64);index;not null"`
	Provider   string `gorm:"type:varchar(32);not null"`
	DeviceInfo datatypes.JSONType[entity.DeviceInfo]
	CreatedAt  time.Time
	ExpiresAt  time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
