package users

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	QueryTimeoutDuration = time.Second * 5
)

// Role decides which half of the API a staff member may use.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCounter Role = "counter"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCounter
}

// User is a staff member. Identity comes from the upstream provider's token;
// only the email is used to find the row.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role" swaggertype:"string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update holds the optional fields of a staff edit.
type Update struct {
	Name *string
	Role *Role
}
