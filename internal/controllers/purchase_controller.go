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

// PurchaseController handles order listing and the order lifecycle
type PurchaseController struct {
	purchaseService services.PurchaseService
	cardService     services.CardService
}

// NewPurchaseController creates a new instance of PurchaseController
func NewPurchaseController(purchaseService services.PurchaseService, cardService services.CardService) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService, cardService: cardService}
}

// Index lists purchases: all of them for admins, own ones for customers
func (pc *PurchaseController) Index(c *gin.Context) {
	var purchases []models.Purchase
	var err error
	if isAdmin(c) {
		purchases, err = pc.purchaseService.ListAll()
	} else {
		purchases, err = pc.purchaseService.ListForUser(currentUserID(c))
	}
	if err != nil {
		log.WithError(err).Error("Failed to retrieve purchases")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve purchases"))
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// Cards shows one purchase with its line items. Customers only see their
// own purchases, admins see any.
func (pc *PurchaseController) Cards(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid purchase ID format"))
		return
	}

	purchase, err := pc.purchaseService.GetForUser(currentUserID(c), uint(id), isAdmin(c))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPurchaseNotFound, "Purchase not found"))
		return
	}

	cards, err := pc.cardService.ForPurchase(purchase.ID)
	if err != nil {
		log.WithError(err).Error("Failed to retrieve cards")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve cards"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchase": purchase, "cards": cards})
}

// Place advances the caller's purchase from pending to placed
func (pc *PurchaseController) Place(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid purchase ID format"))
		return
	}

	purchase, err := pc.purchaseService.Place(currentUserID(c), uint(id))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"purchase": purchase, "message": "Order placed successfully"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrInvalidTransition, "Purchase cannot be placed"))
	default:
		log.WithError(err).Error("Failed to place purchase")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to place order"))
	}
}

// Deliver godoc
// @Summary Mark a purchase as delivered
// @Description Advance a placed purchase to delivered (admin only)
// @Tags purchases
// @Produce json
// @Param id path int true "Purchase ID"
// @Success 200 {object} models.Purchase
// @Failure 409 {object} models.APIError
// @Router /admin/purchases/{id}/deliver [put]
func (pc *PurchaseController) Deliver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid purchase ID format"))
		return
	}

	purchase, err := pc.purchaseService.Deliver(uint(id))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"purchase": purchase, "message": "Successfully updated"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrInvalidTransition, "Purchase cannot be delivered"))
	default:
		log.WithError(err).Error("Failed to deliver purchase")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update purchase"))
	}
}

// Delete removes a pending purchase together with its cards
func (pc *PurchaseController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid purchase ID format"))
		return
	}

	switch err := pc.purchaseService.Delete(currentUserID(c), uint(id), isAdmin(c)); {
	case err == nil:
		// Drop the session's active purchase when it was the deleted one
		session := sessions.Default(c)
		if pid, ok := session.Get(middleware.SessionKeyPurchase).(uint); ok && pid == uint(id) {
			session.Delete(middleware.SessionKeyPurchase)
			if err := session.Save(); err != nil {
				log.WithError(err).Error("Failed to update session")
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPurchaseNotFound, "Purchase not found"))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Not your purchase"))
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrPurchaseNotPending, "Only pending purchases can be deleted"))
	default:
		log.WithError(err).Error("Failed to delete purchase")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete purchase"))
	}
}
