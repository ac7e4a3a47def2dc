package model

import (
	"time"

	"himart/internal/domain/entity"

	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. Addresses are kept inline as a JSON array.
type UserModel struct {
	ID                  string `gorm:"type:varchar(64);primaryKey"`
	Email               string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName           string `gorm:"type:varchar(100)"`
	LastName            string `gorm:"type:varchar(100)"`
	DateOfBirth         string `gorm:"type:varchar(32)"`
	EmailVerified       bool
	PhoneNumber         string `gorm:"type:varchar(32)"`
	Picture             string `gorm:"type:text"`
	IsSeller            bool
	Password            string `gorm:"type:varchar(255)"`
	GoogleID            string `gorm:"type:varchar(255);index"`
	GoogleRefreshToken  string `gorm:"type:text"`
	FacebookID          string `gorm:"type:varchar(255);index"`
	FacebookAccessToken string `gorm:"type:text"`
	Addresses           datatypes.JSONSlice[entity.Address]
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
