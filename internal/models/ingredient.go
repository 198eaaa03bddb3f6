package models

import (
	"time"
)

// Ingredient represents a topping that can be put on pizzas
type Ingredient struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Vegetarian bool      `json:"vegetarian"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}
