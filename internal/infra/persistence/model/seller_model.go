package model

import "time"

// SellerModel mirrors the 'sellers' table. UserID is both the primary key and the owning user.
type SellerModel struct {
	UserID       string `gorm:"type:varchar(64);primaryKey"`
	BusinessName string `gorm:"type:varchar(255);not null"`
	BusinessType string `gorm:"type:varchar(100)"`
	BusinessLogo string `gorm:"type:text"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(32)"`
	Address      string `gorm:"type:text"`
	TaxID        string `gorm:"type:varchar(64)"`
	AuthorID     string `gorm:"type:varchar(64)"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerModel) TableName() string {
	return "sellers"
}
