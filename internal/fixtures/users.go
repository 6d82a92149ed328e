package fixtures

import (
	"time"

	"moviecat/pkg/domain"
)

// Credential is a seeded account for mock mode. Passwords are kept in
// plaintext here and hashed by the mock auth service at construction.
type Credential struct {
	User     domain.User
	Password string
}

// Users returns the seeded accounts. admin@movies.com is the only admin.
func Users() []Credential {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []Credential{
		{
			User:     domain.User{UserID: 1, Email: "admin@movies.com", Role: domain.RoleAdmin, CreatedAt: created},
			Password: "admin123",
		},
		{
			User:     domain.User{UserID: 2, Email: "user@movies.com", Role: domain.RoleUser, CreatedAt: created},
			Password: "user123",
		},
		{
			User:     domain.User{UserID: 3, Email: "john.doe@movies.com", Role: domain.RoleUser, CreatedAt: created},
			Password: "password123",
		},
		{
			User:     domain.User{UserID: 4, Email: "jane.smith@movies.com", Role: domain.RoleUser, CreatedAt: created},
			Password: "password123",
		},
	}
}
