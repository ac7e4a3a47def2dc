package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID            string  `gorm:"type:varchar(64);primaryKey"`
	Title         string  `gorm:"type:varchar(255);not null"`
	Description   string  `gorm:"type:text"`
	Price         float64 `gorm:"not null"`
	DiscountPrice float64
	Image         string `gorm:"type:text"`
	Stock         int
	Category      string `gorm:"type:varchar(100);index"`
	Keywords      datatypes.JSONSlice[string]
	BrandName     string `gorm:"type:varchar(255)"`
	SellerID      string `gorm:"type:varchar(64);index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// EngagementModel mirrors the 'product_engagements' table.
// The composite key keeps a single record per user per kind per product.
type EngagementModel struct {
	Kind      string `gorm:"type:varchar(32);primaryKey"`
	ProductID string `gorm:"type:varchar(64);primaryKey;index"`
	UserID    string `gorm:"type:varchar(64);primaryKey"`
	Rating    int
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EngagementModel) TableName() string {
	return "product_engagements"
}
