package services

import (
	"testing"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddToCartCreatesPurchaseAndCard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, card, err := svc.AddToCart(user.ID, pizza.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, purchase.Status)
	assert.Equal(t, user.ID, purchase.UserID)
	assert.Equal(t, pizza.ID, card.PizzaID)
	assert.Equal(t, purchase.ID, card.PurchaseID)
	assert.Equal(t, 2, card.Quantity)

	// A second add reuses the same pending purchase
	other := createTestPizza(t, db, "Pepperoni", 12.99)
	purchase2, card2, err := svc.AddToCart(user.ID, other.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, purchase2.ID)
	assert.NotEqual(t, card.ID, card2.ID)

	var purchaseCount int64
	db.Model(&models.Purchase{}).Where("user_id = ?", user.ID).Count(&purchaseCount)
	assert.Equal(t, int64(1), purchaseCount)
}

func TestAddToCartValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	_, _, err := svc.AddToCart(user.ID, pizza.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = svc.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Neither attempt may leave a purchase behind
	var purchaseCount int64
	db.Model(&models.Purchase{}).Count(&purchaseCount)
	assert.Equal(t, int64(0), purchaseCount)
}

func TestCartQuantityUpdateIsAuthoritative(t *testing.T) {
	db := setupTestDB(t)
	purchases := NewPurchaseService(db)
	cards := NewCardService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, card, err := purchases.AddToCart(user.ID, pizza.ID, 2)
	require.NoError(t, err)

	fetched, err := cards.ForPurchase(purchase.ID)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, 2, fetched[0].Quantity)

	_, err = cards.UpdateQuantity(user.ID, card.ID, 5, false)
	require.NoError(t, err)

	// A fresh fetch reflects the update, never the stale value
	fetched, err = cards.ForPurchase(purchase.ID)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, 5, fetched[0].Quantity)
}

func TestCardMutationsRequireOwnershipAndPending(t *testing.T) {
	db := setupTestDB(t)
	purchases := NewPurchaseService(db)
	cards := NewCardService(db)
	owner := createTestUser(t, db, "owner@b.com", models.RoleCustomer)
	intruder := createTestUser(t, db, "intruder@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, card, err := purchases.AddToCart(owner.ID, pizza.ID, 1)
	require.NoError(t, err)

	_, err = cards.UpdateQuantity(intruder.ID, card.ID, 3, false)
	assert.ErrorIs(t, err, ErrForbidden)

	err = cards.Remove(intruder.ID, card.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = cards.UpdateQuantity(owner.ID, card.ID, 0, false)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Once placed, even the owner cannot change line items
	_, err = purchases.Place(owner.ID, purchase.ID)
	require.NoError(t, err)

	_, err = cards.UpdateQuantity(owner.ID, card.ID, 3, false)
	assert.ErrorIs(t, err, ErrNotPending)

	err = cards.Remove(owner.ID, card.ID, false)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestStatusTransitionOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, _, err := svc.AddToCart(user.ID, pizza.ID, 1)
	require.NoError(t, err)

	// Delivering straight from pending must fail
	_, err = svc.Deliver(purchase.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	placed, err := svc.Place(user.ID, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, placed.Status)
	require.NotNil(t, placed.PurchasedAt)

	// Placing twice must fail
	_, err = svc.Place(user.ID, purchase.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	delivered, err := svc.Deliver(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)

	_, err = svc.Deliver(purchase.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPlaceRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	owner := createTestUser(t, db, "owner@b.com", models.RoleCustomer)
	intruder := createTestUser(t, db, "intruder@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, _, err := svc.AddToCart(owner.ID, pizza.ID, 1)
	require.NoError(t, err)

	_, err = svc.Place(intruder.ID, purchase.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The purchase is untouched
	stored, err := svc.GetForUser(owner.ID, purchase.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestDeletePurchase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	owner := createTestUser(t, db, "owner@b.com", models.RoleCustomer)
	intruder := createTestUser(t, db, "intruder@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, _, err := svc.AddToCart(owner.ID, pizza.ID, 1)
	require.NoError(t, err)

	// Only the owner may delete
	err = svc.Delete(intruder.ID, purchase.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(owner.ID, purchase.ID, false))

	var cardCount int64
	db.Model(&models.Card{}).Where("purchase_id = ?", purchase.ID).Count(&cardCount)
	assert.Equal(t, int64(0), cardCount)

	err = svc.Delete(owner.ID, purchase.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteNonPendingPurchaseFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	purchase, _, err := svc.AddToCart(user.ID, pizza.ID, 1)
	require.NoError(t, err)

	_, err = svc.Place(user.ID, purchase.ID)
	require.NoError(t, err)

	err = svc.Delete(user.ID, purchase.ID, false)
	assert.ErrorIs(t, err, ErrNotPending)

	// Admins cannot delete placed purchases either
	err = svc.Delete(user.ID, purchase.ID, true)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestActivePurchaseLookup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	user := createTestUser(t, db, "a@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	active, err := svc.Active(user.ID)
	require.NoError(t, err)
	assert.Nil(t, active)

	purchase, _, err := svc.AddToCart(user.ID, pizza.ID, 1)
	require.NoError(t, err)

	active, err = svc.Active(user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, purchase.ID, active.ID)

	_, err = svc.Place(user.ID, purchase.ID)
	require.NoError(t, err)

	// A placed purchase is no longer an open cart
	active, err = svc.Active(user.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestPurchaseListings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPurchaseService(db)
	alice := createTestUser(t, db, "alice@b.com", models.RoleCustomer)
	bob := createTestUser(t, db, "bob@b.com", models.RoleCustomer)
	pizza := createTestPizza(t, db, "Margherita", 10.99)

	_, _, err := svc.AddToCart(alice.ID, pizza.ID, 1)
	require.NoError(t, err)
	_, _, err = svc.AddToCart(bob.ID, pizza.ID, 1)
	require.NoError(t, err)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)

	// Customers cannot read purchases of other users
	_, err = svc.GetForUser(alice.ID, mine[0].ID, false)
	require.NoError(t, err)
	bobs, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	_, err = svc.GetForUser(alice.ID, bobs[0].ID, false)
	assert.Error(t, err)

	// Admins can
	_, err = svc.GetForUser(alice.ID, bobs[0].ID, true)
	require.NoError(t, err)
}
