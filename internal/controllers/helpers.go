package controllers

import (
	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user id set by the Authenticated middleware
func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userID")
	id, _ := v.(uint)
	return id
}

// isAdmin reads the role set by the Authenticated middleware
func isAdmin(c *gin.Context) bool {
	v, _ := c.Get("userRole")
	role, _ := v.(string)
	return role == models.RoleAdmin
}
