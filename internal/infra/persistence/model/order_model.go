package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	RestaurantID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	AddressID     uuid.UUID         `gorm:"type:uuid;not null"`
	PaymentMethod string            `gorm:"type:varchar(20);not null"`
	DiscountCode  string            `gorm:"type:varchar(50)"`
	Note          string            `gorm:"type:text"`
	Status        string            `gorm:"type:varchar(20);not null;default:'processing';index"`
	Total         int64             `gorm:"not null"`
	Lines         []*OrderLineModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel is the GORM-specific struct for the 'order_lines' table.
// The unit_price column holds price x quantity under its legacy name, same as
// the cart line it was snapshotted from.
type OrderLineModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Note      string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
