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

// UserController handles registration, login and account requests
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register godoc
// @Summary Register a new account
// @Description Create a customer account from the registration form data
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /register [post]
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
		FirstName       string `json:"first_name" binding:"required"`
		LastName        string `json:"last_name" binding:"required"`
		Street          string `json:"street" binding:"required"`
		StrNo           string `json:"str_no" binding:"required"`
		Zip             string `json:"zip" binding:"required"`
		City            string `json:"city" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPasswordMismatch, "Passwords do not match"))
		return
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Street:    req.Street,
		StrNo:     req.StrNo,
		Zip:       req.Zip,
		City:      req.City,
	}

	switch err := uc.userService.Register(user, req.Password); {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Account successfully created"})
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrWeakPassword, "Password too weak"))
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrEmailNotAvailable, "Email not available"))
	default:
		log.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create account"))
	}
}

// Login authenticates the user and stores the login in the session
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user, err := uc.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Login failed"))
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyLogin, user.ID)
	if err := session.Save(); err != nil {
		log.WithError(err).Error("Failed to save session")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session
func (uc *UserController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.WithError(err).Error("Failed to clear session")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to clear session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the logged-in user's account data
func (uc *UserController) Profile(c *gin.Context) {
	user, err := uc.userService.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description Promote or demote a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /admin/users/{id}/role [put]
func (uc *UserController) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid user ID format"))
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user, err := uc.userService.UpdateRole(uint(id), req.Role)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"user": user, "message": "Successfully updated"})
	case errors.Is(err, services.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid role"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "User not found"))
	default:
		log.WithError(err).Error("Failed to update user role")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update role"))
	}
}
