package models

import (
	"time"
)

// Purchase statuses. A purchase starts pending (an open cart), is placed by
// the owning customer and marked delivered by an admin.
const (
	StatusPending   = "pending"
	StatusPlaced    = "placed"
	StatusDelivered = "delivered"
)

// statusTransitions is the only allowed progression: pending -> placed -> delivered
var statusTransitions = map[string]string{
	StatusPending: StatusPlaced,
	StatusPlaced:  StatusDelivered,
}

// CanTransition reports whether a purchase may move from one status to another
func CanTransition(from, to string) bool {
	return statusTransitions[from] == to
}

// Purchase represents an order, progressing through pending/placed/delivered
type Purchase struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	PurchasedAt *time.Time `json:"purchased_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	Status      string     `gorm:"default:'pending'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchase"
}

// IsPending reports whether the purchase is still an open cart
func (p *Purchase) IsPending() bool {
	return p.Status == StatusPending
}
