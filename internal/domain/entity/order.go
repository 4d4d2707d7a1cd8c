package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	// OrderStatusProcessing indicates the order awaits restaurant confirmation.
	// This is the only status in which the customer may still edit the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusConfirmed indicates the restaurant accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusDelivering indicates the order is on its way.
	OrderStatusDelivering OrderStatus = "delivering"
	// OrderStatusCompleted indicates the order was delivered.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Editable reports whether the customer may still replace the order's contents.
func (s OrderStatus) Editable() bool {
	return s == OrderStatusProcessing
}

// Order is a placed order, created from a cart at checkout. An order belongs to
// exactly one restaurant by construction.
type Order struct {
	ID            uuid.UUID     `json:"id"`             // The Global Unique Identifier (GUID) for the order.
	UserID        uuid.UUID     `json:"user_id"`        // The ID of the ordering user.
	RestaurantID  uuid.UUID     `json:"restaurant_id"`  // The ID of the restaurant fulfilling the order.
	AddressID     uuid.UUID     `json:"address_id"`     // The ID of the selected delivery address.
	PaymentMethod PaymentMethod `json:"payment_method"` // The single selected payment method.
	DiscountCode  string        `json:"discount_code"`  // Optional discount code, applied server-side.
	Note          string        `json:"note"`           // Optional note to the restaurant.
	Status        OrderStatus   `json:"status"`         // Lifecycle status of the order.
	Total         int64         `json:"total"`          // Sum of line subtotals before discount.
	Lines         []*OrderLine  `json:"lines"`          // Line items of the order.
	CreatedAt     time.Time     `json:"created_at"`     // Timestamp of when the order was placed.
	UpdatedAt     time.Time     `json:"updated_at"`     // Timestamp of the last modification.
}

// LineByID returns the order line with the given ID, or nil if absent.
func (o *Order) LineByID(id uuid.UUID) *OrderLine {
	for _, line := range o.Lines {
		if line.ID == id {
			return line
		}
	}

	return nil
}

// OrderLine is a single product entry of an order, snapshotted from a cart line
// at checkout. LineSubtotal keeps the same legacy unit_price wire name as the
// cart line it was created from.
type OrderLine struct {
	ID           uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the line.
	OrderID      uuid.UUID `json:"order_id"`   // The ID of the owning order.
	ProductID    uuid.UUID `json:"product_id"` // The ID of the ordered product.
	Quantity     int       `json:"quantity"`   // Positive count of the product.
	LineSubtotal int64     `json:"unit_price"` // price x quantity, kept under the legacy wire name.
	Note         string    `json:"note"`       // Optional per-line note.
}
