package dto

import "time"

// WhatsAppOrderResponse represents a recorded WhatsApp order.
type WhatsAppOrderResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	ProductID     string    `json:"product_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// WhatsAppRedirectResponse carries the outbound deep link for a new order.
type WhatsAppRedirectResponse struct {
	Order WhatsAppOrderResponse `json:"order"`
	Link  string                `json:"link"`
}
