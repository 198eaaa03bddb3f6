package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/crustco/pizzeria-api/docs" // Import generated docs
	"github.com/crustco/pizzeria-api/internal/config"
	"github.com/crustco/pizzeria-api/internal/controllers"
	"github.com/crustco/pizzeria-api/internal/database"
	"github.com/crustco/pizzeria-api/internal/middleware"
	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                   *gorm.DB
	userService          services.UserService
	pizzaService         services.PizzaService
	ingredientService    services.IngredientService
	purchaseService      services.PurchaseService
	cardService          services.CardService
	userController       *controllers.UserController
	pizzaController      controllers.PizzaController
	ingredientController controllers.IngredientController
	purchaseController   *controllers.PurchaseController
	cardController       *controllers.CardController
	configuration        *config.Config
)

// @title Pizzeria API
// @version 1.0
// @description Pizzeria ordering API with session-based authentication
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	userService = services.NewUserService(db)
	pizzaService = services.NewPizzaService(db)
	ingredientService = services.NewIngredientService(db)
	purchaseService = services.NewPurchaseService(db)
	cardService = services.NewCardService(db)

	userController = controllers.NewUserController(userService)
	pizzaController = controllers.NewPizzaController(pizzaService)
	ingredientController = controllers.NewIngredientController(ingredientService)
	purchaseController = controllers.NewPurchaseController(purchaseService, cardService)
	cardController = controllers.NewCardController(purchaseService, cardService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf.String())
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds initial data when the database is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:  conf.DBDriver,
		Host:    conf.DBHost,
		Port:    conf.DBPort,
		Name:    conf.DBName,
		SSLMode: conf.DBSSLMode,
		Path:    conf.DBPath,
		Writer:  database.Credentials{User: conf.DBWriterUser, Password: conf.DBWriterPassword},
		Reader:  database.Credentials{User: conf.DBReaderUser, Password: conf.DBReaderPassword},
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Pizza{},
		&models.Ingredient{},
		&models.PizzaIngredient{},
		&models.Purchase{},
		&models.Card{},
	)
	checkPanicErr(err)

	// Seed only if the menu is empty
	var count int64
	db.Model(&models.Pizza{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with an admin account and a starter menu
func seedDatabase() {
	log.Info("Seeding database with initial data")

	admin := models.User{
		Email:     config.GetEnvWithDefault("ADMIN_EMAIL", "admin@pizzeria.local"),
		FirstName: "Admin",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}
	checkPanicErr(admin.SetPassword(config.GetEnvWithDefault("ADMIN_PASSWORD", "Admin123!pizza")))
	db.Create(&admin)

	ingredients := []models.Ingredient{
		{Name: "Tomato Sauce", Price: 0.50, Vegetarian: true},
		{Name: "Mozzarella", Price: 1.00, Vegetarian: true},
		{Name: "Basil", Price: 0.30, Vegetarian: true},
		{Name: "Pepperoni", Price: 1.50, Vegetarian: false},
		{Name: "Bell Peppers", Price: 0.80, Vegetarian: true},
		{Name: "Olives", Price: 0.70, Vegetarian: true},
	}
	for i := range ingredients {
		db.Create(&ingredients[i])
	}

	pizzas := []struct {
		pizza      models.Pizza
		quantities map[int]int // index into ingredients -> quantity
	}{
		{models.Pizza{Name: "Margherita", Price: 10.99}, map[int]int{0: 1, 1: 1, 2: 1}},
		{models.Pizza{Name: "Pepperoni", Price: 12.99}, map[int]int{0: 1, 1: 1, 3: 2}},
		{models.Pizza{Name: "Vegetarian", Price: 11.99}, map[int]int{0: 1, 1: 1, 4: 1, 5: 1}},
	}
	for i := range pizzas {
		db.Create(&pizzas[i].pizza)
		for idx, quantity := range pizzas[i].quantities {
			db.Create(&models.PizzaIngredient{
				PizzaID:      pizzas[i].pizza.ID,
				IngredientID: ingredients[idx].ID,
				Quantity:     quantity,
			})
		}
	}
	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.CSRFHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.Sessions(configuration.SessionSecret))
	router.Use(middleware.CSRF())

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// CSRF token endpoint, forms fetch the token here before posting
	router.GET("/csrf", csrfTokenHandler)

	// Public routes
	router.POST("/register", userController.Register)
	router.POST("/login", userController.Login)
	router.POST("/logout", userController.Logout)
	router.GET("/pizzas", pizzaController.GetAllPizzas)
	router.GET("/pizzas/:id", pizzaController.GetPizzaByID)
	router.GET("/ingredients", ingredientController.GetAllIngredients)
	router.GET("/ingredients/:id", ingredientController.GetIngredientByID)

	// Routes requiring a logged-in session
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

		// Admin-only actions, the role gate runs before every handler
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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-api",
	})
}

// csrfTokenHandler returns the session's CSRF token
func csrfTokenHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrf_token": middleware.EnsureCSRFToken(c)})
}
