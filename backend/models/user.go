package models

// UserRole is the role label shown on the user management page.
// It is a plain attribute and is not linked to the permission roles.
type UserRole string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleManager UserRole = "Manager"
	UserRoleMember  UserRole = "Member"
)

// UserRoles returns the selectable role labels
func UserRoles() []UserRole {
	return []UserRole{UserRoleAdmin, UserRoleManager, UserRoleMember}
}

// Valid reports whether the label is one of the three fixed values
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleMember:
		return true
	}
	return false
}

// User represents a row of the user management table
type User struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// NewUserInput is the payload for adding a user
type NewUserInput struct {
	Name  string   `json:"name" validate:"required"`
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"required,oneof=Admin Manager Member"`
}

// SeedUsers returns the initial user list
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Role: UserRoleAdmin},
		{ID: 2, Name: "Bob Smith", Email: "bob@example.com", Role: UserRoleManager},
		{ID: 3, Name: "Charlie Brown", Email: "charlie@example.com", Role: UserRoleMember},
	}
}
