package model

import "time"

// CartItemModel mirrors the 'cart_items' table, one row per user and product.
type CartItemModel struct {
	UserID    string `gorm:"type:varchar(64);primaryKey"`
	ProductID string `gorm:"type:varchar(64);primaryKey"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}

// All lists every model managed by migrations.
func All() []any {
	return []any{
		&UserModel{},
		&SessionModel{},
		&SellerModel{},
		&ProductModel{},
		&EngagementModel{},
		&CartItemModel{},
	}
}
