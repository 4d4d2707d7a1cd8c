package entity

// PaymentMethod represents how the customer pays for an order.
type PaymentMethod string

const (
	// PaymentMethodCash indicates payment on delivery.
	PaymentMethodCash PaymentMethod = "cash"
	// PaymentMethodCard indicates card payment through the payment gateway.
	PaymentMethodCard PaymentMethod = "card"
	// PaymentMethodTransfer indicates a bank transfer.
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// String returns the string representation of the PaymentMethod.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid checks if the PaymentMethod is a valid value.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	default:
		return false
	}
}
