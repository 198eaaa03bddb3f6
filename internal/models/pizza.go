package models

import (
	"time"
)

// Pizza represents a pizza on the menu
type Pizza struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pizza) TableName() string {
	return "pizza"
}
