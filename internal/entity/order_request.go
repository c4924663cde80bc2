package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// RequestStatus is the workflow state of a commissioned-sculpture request.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "new"
	RequestStatusInProgress RequestStatus = "in progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Valid reports whether the status is one of the known request states.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusNew, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// ServiceTypes enumerates the offerings a booking may request.
var ServiceTypes = []string{"custom", "restoration", "workshop", "consultation"}

// ValidServiceType reports whether t names a known offering.
func ValidServiceType(t string) bool {
	for _, known := range ServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// OrderRequest is a customer-submitted commission enquiry stored in the
// order_requests table. Rows are never deleted, only status-transitioned.
type OrderRequest struct {
	bun.BaseModel `bun:"table:order_requests"`

	ID            string        `bun:",pk"`
	Name          string        `bun:"name"`
	Email         string        `bun:"email"`
	Phone         string        `bun:"phone,nullzero"`
	ServiceType   string        `bun:"service_type"`
	StatueName    string        `bun:"statue_name,nullzero"`
	SculptureSize string        `bun:"sculpture_size,nullzero"`
	Description   string        `bun:"description"`
	Status        RequestStatus `bun:"status"`
	CreatedAt     time.Time     `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
