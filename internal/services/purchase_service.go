package services

import (
	"errors"
	"time"

	"github.com/crustco/pizzeria-api/internal/models"
	"gorm.io/gorm"
)

// PurchaseService manages orders and the active cart of a user. The store is
// the single source of truth for cart state, callers never trust cached
// copies without going through these lookups.
type PurchaseService interface {
	// ListAll retrieves every purchase (admin view)
	ListAll() ([]models.Purchase, error)
	// ListForUser retrieves the purchases belonging to one user
	ListForUser(userID uint) ([]models.Purchase, error)
	// GetForUser retrieves one purchase, restricted to the owner unless admin
	GetForUser(userID, id uint, admin bool) (models.Purchase, error)
	// Active returns the user's pending purchase, or nil when there is none
	Active(userID uint) (*models.Purchase, error)
	// AddToCart adds a pizza to the user's pending purchase, creating the
	// purchase first if needed. Both writes happen in one transaction.
	AddToCart(userID, pizzaID uint, quantity int) (models.Purchase, models.Card, error)
	// Place advances the user's purchase from pending to placed
	Place(userID, id uint) (models.Purchase, error)
	// Deliver advances a purchase from placed to delivered (admin action)
	Deliver(id uint) (models.Purchase, error)
	// Delete removes a pending purchase and its cards
	Delete(userID, id uint, admin bool) error
}

type purchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) PurchaseService {
	return &purchaseService{db: db}
}

func (s *purchaseService) ListAll() ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.db.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *purchaseService) ListForUser(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.db.Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *purchaseService) GetForUser(userID, id uint, admin bool) (models.Purchase, error) {
	var purchase models.Purchase
	query := s.db.Where("id = ?", id)
	if !admin {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&purchase).Error; err != nil {
		return models.Purchase{}, err
	}
	return purchase, nil
}

func (s *purchaseService) Active(userID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Where("user_id = ? AND status = ?", userID, models.StatusPending).
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *purchaseService) AddToCart(userID, pizzaID uint, quantity int) (models.Purchase, models.Card, error) {
	if quantity < 1 {
		return models.Purchase{}, models.Card{}, ErrInvalidQuantity
	}

	var purchase models.Purchase
	var card models.Card
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The pizza must exist before a line item can reference it
		var pizza models.Pizza
		if err := tx.First(&pizza, pizzaID).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND status = ?", userID, models.StatusPending).
			First(&purchase).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			purchase = models.Purchase{UserID: userID, Status: models.StatusPending}
			if err := tx.Create(&purchase).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		card = models.Card{PizzaID: pizzaID, PurchaseID: purchase.ID, Quantity: quantity}
		return tx.Create(&card).Error
	})
	if err != nil {
		return models.Purchase{}, models.Card{}, err
	}
	return purchase, card, nil
}

func (s *purchaseService) Place(userID, id uint) (models.Purchase, error) {
	now := time.Now()
	result := s.db.Model(&models.Purchase{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":       models.StatusPlaced,
			"purchased_at": now,
		})
	if result.Error != nil {
		return models.Purchase{}, result.Error
	}
	// Zero rows means the purchase is missing, owned by someone else or not
	// pending, either way the transition did not happen
	if result.RowsAffected == 0 {
		return models.Purchase{}, ErrInvalidTransition
	}

	var purchase models.Purchase
	if err := s.db.First(&purchase, id).Error; err != nil {
		return models.Purchase{}, err
	}
	return purchase, nil
}

func (s *purchaseService) Deliver(id uint) (models.Purchase, error) {
	now := time.Now()
	result := s.db.Model(&models.Purchase{}).
		Where("id = ? AND status = ?", id, models.StatusPlaced).
		Updates(map[string]interface{}{
			"status":       models.StatusDelivered,
			"delivered_at": now,
		})
	if result.Error != nil {
		return models.Purchase{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Purchase{}, ErrInvalidTransition
	}

	var purchase models.Purchase
	if err := s.db.First(&purchase, id).Error; err != nil {
		return models.Purchase{}, err
	}
	return purchase, nil
}

func (s *purchaseService) Delete(userID, id uint, admin bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, id).Error; err != nil {
			return err
		}
		if !admin && purchase.UserID != userID {
			return ErrForbidden
		}
		if !purchase.IsPending() {
			return ErrNotPending
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Purchase{}, id).Error
	})
}
