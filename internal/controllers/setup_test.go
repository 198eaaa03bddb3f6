package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crustco/pizzeria-api/internal/middleware"
	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

// newTestRouter wires the full middleware chain and route table the way the
// server does, over an in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)

	userService := services.NewUserService(db)
	pizzaService := services.NewPizzaService(db)
	ingredientService := services.NewIngredientService(db)
	purchaseService := services.NewPurchaseService(db)
	cardService := services.NewCardService(db)

	userController := NewUserController(userService)
	pizzaController := NewPizzaController(pizzaService)
	ingredientController := NewIngredientController(ingredientService)
	purchaseController := NewPurchaseController(purchaseService, cardService)
	cardController := NewCardController(purchaseService, cardService)

	router := gin.New()
	router.Use(middleware.Sessions("test-secret"))
	router.Use(middleware.CSRF())

	router.GET("/csrf", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"csrf_token": middleware.EnsureCSRFToken(c)})
	})
	router.POST("/register", userController.Register)
	router.POST("/login", userController.Login)
	router.POST("/logout", userController.Logout)
	router.GET("/pizzas", pizzaController.GetAllPizzas)
	router.GET("/pizzas/:id", pizzaController.GetPizzaByID)
	router.GET("/ingredients", ingredientController.GetAllIngredients)
	router.GET("/ingredients/:id", ingredientController.GetIngredientByID)

	authenticated := router.Group("/")
	authenticated.Use(middleware.Authenticated(userService))
	{
		authenticated.GET("/profile", userController.Profile)

		authenticated.GET("/cart", cardController.Cart)
		authenticated.POST("/cart/items", cardController.Add)
		authenticated.PUT("/cart/items/:id", cardController.Update)
		authenticated.DELETE("/cart/items/:id", cardController.Remove)

		authenticated.GET("/purchases", purchaseController.Index)
		authenticated.GET("/purchases/:id/cards", purchaseController.Cards)
		authenticated.POST("/purchases/:id/place", purchaseController.Place)
		authenticated.DELETE("/purchases/:id", purchaseController.Delete)

		admin := authenticated.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/pizzas", pizzaController.CreatePizza)
			admin.PUT("/pizzas/:id", pizzaController.UpdatePizza)
			admin.DELETE("/pizzas/:id", pizzaController.DeletePizza)

			admin.POST("/ingredients", ingredientController.CreateIngredient)
			admin.PUT("/ingredients/:id", ingredientController.UpdateIngredient)
			admin.DELETE("/ingredients/:id", ingredientController.DeleteIngredient)

			admin.PUT("/purchases/:id/deliver", purchaseController.Deliver)
			admin.PUT("/users/:id/role", userController.UpdateRole)
		}
	}

	return router, db
}

// testClient drives the router like a browser would: it keeps the session
// cookies between requests and sends the CSRF token on mutations.
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
	csrf    string
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	t.Helper()
	client := &testClient{t: t, router: router, cookies: map[string]*http.Cookie{}}

	rec := client.do(http.MethodGet, "/csrf", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	client.csrf = body.Token
	return client
}

func (tc *testClient) do(method, path string, payload interface{}) *httptest.ResponseRecorder {
	tc.t.Helper()

	body := bytes.NewBuffer(nil)
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(tc.t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.csrf != "" {
		req.Header.Set(middleware.CSRFHeader, tc.csrf)
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		tc.cookies[c.Name] = c
	}
	return rec
}

// fetchCSRF re-reads the token, needed after logout invalidates the session
func (tc *testClient) fetchCSRF() string {
	tc.t.Helper()

	tc.csrf = ""
	rec := tc.do(http.MethodGet, "/csrf", nil)
	require.Equal(tc.t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"csrf_token"`
	}
	require.NoError(tc.t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Token
}

func (tc *testClient) register(email, password string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, "/register", gin.H{
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"first_name":       "Mario",
		"last_name":        "Rossi",
		"street":           "Via Roma",
		"str_no":           "1",
		"zip":              "00100",
		"city":             "Rome",
	})
}

func (tc *testClient) login(email, password string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, "/login", gin.H{"email": email, "password": password})
}

func adminUserRolePath(id uint) string {
	return fmt.Sprintf("/admin/users/%d/role", id)
}

func createAdmin(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	admin := models.User{Email: email, FirstName: "Admin", LastName: "Admin", Role: models.RoleAdmin}
	require.NoError(t, admin.SetPassword(password))
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func createMenuPizza(t *testing.T, db *gorm.DB, name string, price float64) models.Pizza {
	t.Helper()
	pizza := models.Pizza{Name: name, Price: price}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
