package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel is the GORM-specific struct for the 'carts' table.
// A user has at most one open cart at a time.
type CartModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// The unique index over (cart_id, product_id) enforces at most one line per
// product in a cart; removed lines flip status to 'inactive' instead of being
// deleted, so the constraint also covers reactivation.
//
// The unit_price column holds price x quantity, not a per-unit price. The
// legacy name is kept because deployed clients read it from the wire.
type CartLineModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int       `gorm:"not null"`
	UnitPrice    int64     `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
