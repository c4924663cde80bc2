package dto

import "time"

// OrderRequestResponse represents a commission enquiry as exposed via transport layers.
type OrderRequestResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	ServiceType   string    `json:"service_type"`
	StatueName    string    `json:"statue_name,omitempty"`
	SculptureSize string    `json:"sculpture_size,omitempty"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
