package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderStatus is the workflow state of a WhatsApp-initiated order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// WhatsAppOrder records a product order initiated through the WhatsApp
// deep-link flow, captured before the customer is redirected.
type WhatsAppOrder struct {
	bun.BaseModel `bun:"table:whatsapp_orders"`

	ID            string      `bun:",pk"`
	CustomerName  string      `bun:"customer_name"`
	CustomerEmail string      `bun:"customer_email,nullzero"`
	CustomerPhone string      `bun:"customer_phone,nullzero"`
	ProductID     string      `bun:"product_id,nullzero"`
	Status        OrderStatus `bun:"status"`
	CreatedAt     time.Time   `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
