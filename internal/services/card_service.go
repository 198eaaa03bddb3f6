package services

import (
	"github.com/crustco/pizzeria-api/internal/models"
	"gorm.io/gorm"
)

// CardService manages the line items of a purchase. Mutations are only
// allowed for the owning user (or an admin) while the purchase is pending.
type CardService interface {
	// ForPurchase retrieves the cards of one purchase
	ForPurchase(purchaseID uint) ([]models.Card, error)
	// UpdateQuantity changes the quantity of a line item
	UpdateQuantity(userID, cardID uint, quantity int, admin bool) (models.Card, error)
	// Remove deletes a line item
	Remove(userID, cardID uint, admin bool) error
}

type cardService struct {
	db *gorm.DB
}

func NewCardService(db *gorm.DB) CardService {
	return &cardService{db: db}
}

func (s *cardService) ForPurchase(purchaseID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("purchase_id = ?", purchaseID).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *cardService) UpdateQuantity(userID, cardID uint, quantity int, admin bool) (models.Card, error) {
	if quantity < 1 {
		return models.Card{}, ErrInvalidQuantity
	}

	var card models.Card
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.mutableCard(tx, userID, cardID, admin, &card); err != nil {
			return err
		}
		if err := tx.Model(&card).Update("quantity", quantity).Error; err != nil {
			return err
		}
		card.Quantity = quantity
		return nil
	})
	if err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (s *cardService) Remove(userID, cardID uint, admin bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := s.mutableCard(tx, userID, cardID, admin, &card); err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, cardID).Error
	})
}

// mutableCard loads a card and verifies the caller may change it: the parent
// purchase must belong to the user (unless admin) and still be pending
func (s *cardService) mutableCard(tx *gorm.DB, userID, cardID uint, admin bool, card *models.Card) error {
	if err := tx.First(card, cardID).Error; err != nil {
		return err
	}

	var purchase models.Purchase
	if err := tx.First(&purchase, card.PurchaseID).Error; err != nil {
		return err
	}
	if !admin && purchase.UserID != userID {
		return ErrForbidden
	}
	if !purchase.IsPending() {
		return ErrNotPending
	}
	return nil
}
