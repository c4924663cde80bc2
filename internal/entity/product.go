package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Product is a catalog entry for a sculpture style offered for sale.
// Price is optional; enquiry-only pieces carry none.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          string    `bun:",pk"`
	Title       string    `bun:"title"`
	Description string    `bun:"description"`
	Category    string    `bun:"category"`
	Image       string    `bun:"image"`
	Price       *float64  `bun:"price"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
