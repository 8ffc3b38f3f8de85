package models

import "time"

// Role grants dashboard privileges.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a dashboard account. Passwords are compared as plain text.
type User struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"-"`
	Role     Role   `json:"role" bson:"role"`
	Active   bool   `json:"active" bson:"active"`
}

// UserForm carries the fields accepted when creating or editing a user.
// A nil Active keeps the stored flag on edit and means active on create.
type UserForm struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     Role   `json:"role" binding:"required,oneof=admin user"`
	Active   *bool  `json:"active,omitempty"`
}

// Session is the persisted sign-in flag plus a snapshot of the signed-in user.
type Session struct {
	Authenticated bool      `bson:"authenticated" json:"authenticated"`
	User          User      `bson:"user" json:"user"`
	SavedAt       time.Time `bson:"saved_at" json:"savedAt"`
}
