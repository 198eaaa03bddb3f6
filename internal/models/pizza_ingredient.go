package models

// PizzaIngredient links an ingredient to a pizza with a quantity.
// The composite unique index keeps one authoritative row per pair.
type PizzaIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	PizzaID      uint `gorm:"not null;uniqueIndex:idx_pizza_ingredient" json:"pizza_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_pizza_ingredient" json:"ingredient_id"`
	Quantity     int  `gorm:"not null" json:"quantity"`
}

// The derived table name would not match the schema convention, so it is fixed here
func (PizzaIngredient) TableName() string {
	return "pizza_ingredient"
}
