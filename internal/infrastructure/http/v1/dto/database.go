package dto

import "fmt"

// DatabaseConfig is the connection payload of the database
// administration endpoints.
type DatabaseConfig struct {
	Host        string `json:"host" binding:"required"`
	Port        int    `json:"port"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password"`
	Database    string `json:"database" binding:"required"`
	TablePrefix string `json:"tablePrefix"`
}

// DSN builds the pgx connection string.
func (c DatabaseConfig) DSN() string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=prefer",
		c.Username, c.Password, c.Host, port, c.Database)
}

// DatabaseResult is the response of the database administration
// endpoints.
type DatabaseResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Tables  []string `json:"tables,omitempty"`
	Missing []string `json:"missing,omitempty"`
}
