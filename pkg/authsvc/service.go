// Package authsvc signs users in and out and manages accounts. Login
// installs the session into the session cell; Logout clears it. Everything
// else is stateless against the backend or the fixture set.
package authsvc

import (
	"context"

	"moviecat/pkg/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. Registering does not sign in.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries the fields an admin may change on an account. Empty
// fields are left untouched.
type UserUpdate struct {
	Email    string          `json:"email,omitempty"`
	Password string          `json:"password,omitempty"`
	Role     domain.UserRole `json:"role,omitempty"`
}

// LoginResult is the issued session.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Sessions is the slice of the session cell this package needs.
type Sessions interface {
	Set(user domain.User, token string) error
	Clear() error
}

// Service is the account contract shared by both branches.
type Service interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Register(ctx context.Context, reg Registration) (domain.User, error)
	UpdateUser(ctx context.Context, id int, update UserUpdate) (domain.User, error)
	Logout() error
}
