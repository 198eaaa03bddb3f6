package controllers

import (
	"net/http"
	"strconv"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza with its ingredients
	GetPizzaByID(c *gin.Context)
	// CreatePizza creates a new pizza with its ingredient quantities
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type pizzaController struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &pizzaController{service: service}
}

// pizzaRequest is the payload for creating or updating a pizza. Quantities
// maps ingredient id to quantity, zero entries are ignored.
type pizzaRequest struct {
	Name       string       `json:"name" binding:"required"`
	Price      float64      `json:"price" binding:"required"`
	Quantities map[uint]int `json:"quantities"`
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get a list of all pizzas
// @Tags pizzas
// @Accept json
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /pizzas [get]
func (pc *pizzaController) GetAllPizzas(c *gin.Context) {
	pizzas, err := pc.service.GetAllPizzas()
	if err != nil {
		log.WithError(err).Error("Failed to retrieve pizzas")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve pizzas"))
		return
	}
	c.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza with its ingredients and quantities
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /pizzas/{id} [get]
func (pc *pizzaController) GetPizzaByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid pizza ID format"))
		return
	}

	pizza, err := pc.service.GetPizzaByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
		return
	}

	ingredients, err := pc.service.IngredientsFor(pizza.ID)
	if err != nil {
		log.WithError(err).Error("Failed to retrieve pizza ingredients")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve pizza"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"pizza": pizza, "ingredients": ingredients})
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza with its ingredient quantities (admin only)
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body pizzaRequest true "Pizza payload"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /admin/pizzas [post]
func (pc *pizzaController) CreatePizza(c *gin.Context) {
	var req pizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPizzaInvalidData, "Invalid request body"))
		return
	}

	pizza, err := pc.service.CreatePizza(models.Pizza{Name: req.Name, Price: req.Price}, req.Quantities)
	if err != nil {
		log.WithError(err).Error("Failed to create pizza")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create pizza"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pizza": pizza, "message": "Pizza successfully created"})
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Update a pizza and its ingredient quantities (admin only)
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body pizzaRequest true "Pizza payload"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /admin/pizzas/{id} [put]
func (pc *pizzaController) UpdatePizza(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid pizza ID format"))
		return
	}

	existing, err := pc.service.GetPizzaByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
		return
	}

	var req pizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPizzaInvalidData, "Invalid request body"))
		return
	}

	existing.Name = req.Name
	existing.Price = req.Price

	pizza, err := pc.service.UpdatePizza(existing, req.Quantities)
	if err != nil {
		log.WithError(err).Error("Failed to update pizza")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update pizza"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pizza": pizza, "message": "Pizza successfully updated"})
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID (admin only)
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /admin/pizzas/{id} [delete]
func (pc *pizzaController) DeletePizza(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid pizza ID format"))
		return
	}

	if _, err := pc.service.GetPizzaByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
		return
	}

	if err := pc.service.DeletePizza(uint(id)); err != nil {
		log.WithError(err).Error("Failed to delete pizza")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete pizza"))
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
