package domain

import "time"

// User is a registered account. PasswordHash never crosses the HTTP
// boundary; handlers serialize users through the json tags below.
type User struct {
	ID             string    `json:"-"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	PasswordHash   string    `json:"-"`
	SavedTemplates []string  `json:"saved_templates"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
}
