package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel is the GORM-specific struct for the 'products' table.
//
// RestaurantID is nullable in the legacy schema: some historic rows carry the
// owning restaurant only through the preloaded Restaurant association. The
// repository normalizes both shapes into the entity's single RestaurantID
// field.
type ProductModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RestaurantID *uuid.UUID `gorm:"type:uuid;index"`
	Restaurant   *RestaurantModel
	Name         string `gorm:"type:varchar(255);not null"`
	Description  string `gorm:"type:text"`
	Price        int64  `gorm:"not null"`
	ImageURL     string `gorm:"type:text"`
	IsAvailable  bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
