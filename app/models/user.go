package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dashboard roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User is a dashboard account. Passwords are stored bcrypt-hashed and never
// serialised.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	Name      string             `bson:"name"                 json:"name"`
	Email     string             `bson:"email"                json:"email"`
	Password  string             `bson:"password"             json:"-"`
	Role      string             `bson:"role"                 json:"role"`
	Active    bool               `bson:"active"               json:"active"`
	LastLogin time.Time          `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time          `bson:"created_at"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at"           json:"updatedAt"`
}

// Normalize lowercases the email and defaults the role.
func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.Role == "" {
		u.Role = RoleEditor
	}
}
