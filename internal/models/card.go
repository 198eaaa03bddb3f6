package models

// Card is a single line item (pizza + quantity) within a purchase
type Card struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PizzaID    uint `gorm:"not null" json:"pizza_id"`
	PurchaseID uint `gorm:"not null;index" json:"purchase_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`
}

func (Card) TableName() string {
	return "card"
}
