package controllers

import (
	"net/http"
	"strconv"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// IngredientController handles HTTP requests related to ingredients
type IngredientController interface {
	GetAllIngredients(c *gin.Context)
	GetIngredientByID(c *gin.Context)
	CreateIngredient(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	DeleteIngredient(c *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService) IngredientController {
	return &ingredientController{service: service}
}

type ingredientRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Vegetarian bool    `json:"vegetarian"`
}

// GetAllIngredients godoc
// @Summary Get all ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Failure 500 {object} models.APIError
// @Router /ingredients [get]
func (ic *ingredientController) GetAllIngredients(c *gin.Context) {
	ingredients, err := ic.service.GetAllIngredients()
	if err != nil {
		log.WithError(err).Error("Failed to retrieve ingredients")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve ingredients"))
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredientByID godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Router /ingredients/{id} [get]
func (ic *ingredientController) GetIngredientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ingredient ID format"))
		return
	}

	ingredient, err := ic.service.GetIngredientByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create a new ingredient
// @Description Create a new ingredient (admin only)
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body ingredientRequest true "Ingredient payload"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Router /admin/ingredients [post]
func (ic *ingredientController) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	ingredient, err := ic.service.CreateIngredient(models.Ingredient{
		Name:       req.Name,
		Price:      req.Price,
		Vegetarian: req.Vegetarian,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create ingredient")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create ingredient"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ingredient": ingredient, "message": "Ingredient successfully created"})
}

// UpdateIngredient godoc
// @Summary Update an ingredient
// @Description Update an ingredient (admin only)
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body ingredientRequest true "Ingredient payload"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Router /admin/ingredients/{id} [put]
func (ic *ingredientController) UpdateIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ingredient ID format"))
		return
	}

	existing, err := ic.service.GetIngredientByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.Vegetarian = req.Vegetarian

	ingredient, err := ic.service.UpdateIngredient(existing)
	if err != nil {
		log.WithError(err).Error("Failed to update ingredient")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update ingredient"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient, "message": "Ingredient successfully updated"})
}

// DeleteIngredient godoc
// @Summary Delete an ingredient
// @Description Delete an ingredient (admin only)
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /admin/ingredients/{id} [delete]
func (ic *ingredientController) DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ingredient ID format"))
		return
	}

	if _, err := ic.service.GetIngredientByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}

	if err := ic.service.DeleteIngredient(uint(id)); err != nil {
		log.WithError(err).Error("Failed to delete ingredient")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete ingredient"))
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
