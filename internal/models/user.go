package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles. New accounts default to customer, admins are promoted
// administratively.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account with its delivery address
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Street         string    `json:"street"`
	StrNo          string    `json:"str_no"`
	Zip            string    `json:"zip"`
	City           string    `json:"city"`
	Role           string    `gorm:"default:'customer'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// SetPassword hashes the plaintext password with bcrypt and stores the hash
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
