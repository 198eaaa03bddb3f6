package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crustco/pizzeria-api/internal/middleware"
	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CardController handles the active cart and its line items
type CardController struct {
	purchaseService services.PurchaseService
	cardService     services.CardService
}

// NewCardController creates a new instance of CardController
func NewCardController(purchaseService services.PurchaseService, cardService services.CardService) *CardController {
	return &CardController{purchaseService: purchaseService, cardService: cardService}
}

// Cart shows the caller's pending purchase with its line items. The cart is
// re-read from the store on every view, the session only mirrors the id.
func (cc *CardController) Cart(c *gin.Context) {
	userID := currentUserID(c)
	purchase, err := cc.purchaseService.Active(userID)
	if err != nil {
		log.WithError(err).Error("Failed to retrieve active purchase")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve cart"))
		return
	}

	session := sessions.Default(c)
	if purchase == nil {
		// No open cart, drop a stale session reference if present
		if session.Get(middleware.SessionKeyPurchase) != nil {
			session.Delete(middleware.SessionKeyPurchase)
			if err := session.Save(); err != nil {
				log.WithError(err).Error("Failed to update session")
			}
		}
		c.JSON(http.StatusOK, gin.H{"purchase": nil, "cards": []models.Card{}})
		return
	}

	cards, err := cc.cardService.ForPurchase(purchase.ID)
	if err != nil {
		log.WithError(err).Error("Failed to retrieve cards")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve cart"))
		return
	}

	if pid, ok := session.Get(middleware.SessionKeyPurchase).(uint); !ok || pid != purchase.ID {
		session.Set(middleware.SessionKeyPurchase, purchase.ID)
		if err := session.Save(); err != nil {
			log.WithError(err).Error("Failed to update session")
		}
	}

	c.JSON(http.StatusOK, gin.H{"purchase": purchase, "cards": cards})
}

// Add puts a pizza into the caller's cart, creating the pending purchase
// when there is none yet
func (cc *CardController) Add(c *gin.Context) {
	var req struct {
		PizzaID  uint `json:"pizza_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	purchase, card, err := cc.purchaseService.AddToCart(currentUserID(c), req.PizzaID, req.Quantity)
	switch {
	case err == nil:
		session := sessions.Default(c)
		session.Set(middleware.SessionKeyPurchase, purchase.ID)
		if err := session.Save(); err != nil {
			log.WithError(err).Error("Failed to update session")
		}
		c.JSON(http.StatusCreated, gin.H{
			"purchase": purchase,
			"card":     card,
			"message":  "Item added to cart",
		})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Quantity must be at least 1"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
	default:
		log.WithError(err).Error("Failed to add item to cart")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to add item to cart"))
	}
}

// Update changes the quantity of one line item
func (cc *CardController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid card ID format"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	card, err := cc.cardService.UpdateQuantity(currentUserID(c), uint(id), req.Quantity, isAdmin(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"card": card, "message": "Successfully updated"})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Quantity must be at least 1"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCardNotFound, "Card not found"))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Not your cart"))
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrPurchaseNotPending, "Purchase is no longer pending"))
	default:
		log.WithError(err).Error("Failed to update card")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update cart"))
	}
}

// Remove deletes one line item from the cart
func (cc *CardController) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid card ID format"))
		return
	}

	switch err := cc.cardService.Remove(currentUserID(c), uint(id), isAdmin(c)); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCardNotFound, "Card not found"))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Not your cart"))
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrPurchaseNotPending, "Purchase is no longer pending"))
	default:
		log.WithError(err).Error("Failed to delete card")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete cart item"))
	}
}
