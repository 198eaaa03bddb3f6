package services

import (
	"github.com/crustco/pizzeria-api/internal/models"
	"gorm.io/gorm"
)

// IngredientQuantity pairs an ingredient with its quantity on a pizza
type IngredientQuantity struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Quantity   int               `json:"quantity"`
}

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas from the database
	GetAllPizzas() ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id uint) (models.Pizza, error)
	// IngredientsFor retrieves the ingredients of a pizza with their quantities
	IngredientsFor(pizzaID uint) ([]IngredientQuantity, error)
	// CreatePizza creates a new pizza together with its ingredient associations
	CreatePizza(pizza models.Pizza, quantities map[uint]int) (models.Pizza, error)
	// UpdatePizza updates an existing pizza and upserts its ingredient associations
	UpdatePizza(pizza models.Pizza, quantities map[uint]int) (models.Pizza, error)
	// DeletePizza deletes a pizza and its ingredient associations
	DeletePizza(id uint) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.First(&pizza, id).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

// ingredientQuantityRow is the scan target for the ingredient join query
type ingredientQuantityRow struct {
	ID         uint
	Name       string
	Price      float64
	Vegetarian bool
	Quantity   int
}

func (s *pizzaService) IngredientsFor(pizzaID uint) ([]IngredientQuantity, error) {
	var rows []ingredientQuantityRow
	err := s.db.Table("ingredient").
		Select("ingredient.id, ingredient.name, ingredient.price, ingredient.vegetarian, pizza_ingredient.quantity").
		Joins("JOIN pizza_ingredient ON pizza_ingredient.ingredient_id = ingredient.id").
		Where("pizza_ingredient.pizza_id = ?", pizzaID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ingredients := make([]IngredientQuantity, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, IngredientQuantity{
			Ingredient: models.Ingredient{
				ID:         row.ID,
				Name:       row.Name,
				Price:      row.Price,
				Vegetarian: row.Vegetarian,
			},
			Quantity: row.Quantity,
		})
	}
	return ingredients, nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza, quantities map[uint]int) (models.Pizza, error) {
	// Pizza and join rows are one unit of work, a failing association must
	// not leave a half-created pizza behind
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pizza).Error; err != nil {
			return err
		}
		return saveIngredientQuantities(tx, pizza.ID, quantities)
	})
	if err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(pizza models.Pizza, quantities map[uint]int) (models.Pizza, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pizza).Error; err != nil {
			return err
		}
		for ingredientID, quantity := range quantities {
			if quantity <= 0 {
				continue
			}
			var existing models.PizzaIngredient
			err := tx.Where("pizza_id = ? AND ingredient_id = ?", pizza.ID, ingredientID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Update("quantity", quantity).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				assoc := models.PizzaIngredient{
					PizzaID:      pizza.ID,
					IngredientID: ingredientID,
					Quantity:     quantity,
				}
				if err := tx.Create(&assoc).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pizza_id = ?", id).Delete(&models.PizzaIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pizza{}, id).Error
	})
}

// saveIngredientQuantities creates one join row per ingredient with a
// positive quantity, zero and negative quantities are skipped
func saveIngredientQuantities(tx *gorm.DB, pizzaID uint, quantities map[uint]int) error {
	for ingredientID, quantity := range quantities {
		if quantity <= 0 {
			continue
		}
		assoc := models.PizzaIngredient{
			PizzaID:      pizzaID,
			IngredientID: ingredientID,
			Quantity:     quantity,
		}
		if err := tx.Create(&assoc).Error; err != nil {
			return err
		}
	}
	return nil
}
