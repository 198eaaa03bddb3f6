package database

import (
	"fmt"
)

// Role selects which database credentials a connection uses. The schema is
// shared, only the privileges differ: the reader role may only SELECT, the
// writer role owns the tables.
type Role string

const (
	RoleReader Role = "reader"
	RoleWriter Role = "writer"
)

// Credentials holds the user/password pair for one database role
type Credentials struct {
	User     string
	Password string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// PostgreSQL-specific configuration
	Host    string
	Port    string
	Name    string
	SSLMode string

	// Writer is the read-write role used for all statements. Reader is
	// optional; when set (postgres only) SELECTs are routed to a separate
	// connection opened with the reader credentials.
	Writer Credentials
	Reader Credentials

	// SQLite-specific configuration
	Path string
}

// HasReader reports whether a dedicated read-role connection is configured
func (c *DatabaseConfig) HasReader() bool {
	return c.Reader.User != ""
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, Name: %s, SSLMode: %s, Writer: %s/[REDACTED], Reader: %s/[REDACTED], Path: %s}",
		c.Driver, c.Host, c.Port, c.Name, c.SSLMode, c.Writer.User, c.Reader.User, c.Path)
}

// DSN builds a Data Source Name string for the given role based on the driver
func (c *DatabaseConfig) DSN(role Role) string {
	switch c.Driver {
	case "postgres", "postgresql":
		creds := c.Writer
		if role == RoleReader && c.HasReader() {
			creds = c.Reader
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, creds.User, creds.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
