package services

import (
	"fmt"
	"testing"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Pizza{},
		&models.Ingredient{},
		&models.PizzaIngredient{},
		&models.Purchase{},
		&models.Card{},
	))
	return db
}

// createTestUser stores a user with the given role and returns it
func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{Email: email, FirstName: "Test", LastName: "User", Role: role}
	require.NoError(t, user.SetPassword("Abcd123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestPizza stores a pizza and returns it
func createTestPizza(t *testing.T, db *gorm.DB, name string, price float64) models.Pizza {
	t.Helper()

	pizza := models.Pizza{Name: name, Price: price}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}
