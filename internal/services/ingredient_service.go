package services

import (
	"github.com/crustco/pizzeria-api/internal/models"
	"gorm.io/gorm"
)

// IngredientService provides methods to interact with the ingredient database
type IngredientService interface {
	GetAllIngredients() ([]models.Ingredient, error)
	GetIngredientByID(id uint) (models.Ingredient, error)
	CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error)
	UpdateIngredient(ingredient models.Ingredient) (models.Ingredient, error)
	DeleteIngredient(id uint) error
}

type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new instance of IngredientService
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) GetAllIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error) {
	if err := s.db.Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) UpdateIngredient(ingredient models.Ingredient) (models.Ingredient, error) {
	if err := s.db.Save(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) DeleteIngredient(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.PizzaIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ingredient{}, id).Error
	})
}
