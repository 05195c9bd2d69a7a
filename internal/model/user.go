package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role is always one of these two values.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is a known role value.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User represents a registered user. UserID is the application-level
// identity (an opaque 24-hex string) and is distinct from the
// storage-assigned _id.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt digest, never exposed
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PublicUser is the externally visible view of a user. It never carries
// the password digest.
type PublicUser struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the digest-free view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// SelfUpdate is the patch a user may apply to their own profile. The
// protected fields are declared so callers can submit them, but the
// service silently drops them instead of failing.
type SelfUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`

	// Protected fields, stripped before applying.
	UserID   *string `json:"userId"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	StoreID  *string `json:"_id"`
}

// Empty reports whether no fields at all were supplied.
func (p *SelfUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil &&
		p.UserID == nil && p.Password == nil && p.Role == nil && p.StoreID == nil
}

// AdminUserUpdate is the patch an admin may apply to any user. Identity
// and password are still protected; password changes go through the
// dedicated reset operation.
type AdminUserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`

	// Protected fields, stripped before applying.
	UserID   *string `json:"userId"`
	Password *string `json:"password"`
	StoreID  *string `json:"_id"`
}

// Empty reports whether no fields at all were supplied.
func (p *AdminUserUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil &&
		p.UserID == nil && p.Password == nil && p.StoreID == nil
}
