package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// AdminUser is an operator account for the admin dashboard.
type AdminUser struct {
	bun.BaseModel `bun:"table:admin_users"`

	ID           string    `bun:",pk"`
	Email        string    `bun:"email"`
	PasswordHash string    `bun:"password_hash"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
