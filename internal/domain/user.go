package domain

import "time"

// User is the domain model for registered accounts. The password hash never
// leaves the service layer.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
