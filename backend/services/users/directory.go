// Package users implements the user management list.
package users

import (
	"strings"
	"sync"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// Directory is one client's user list. There is no edit or delete, so
// count+1 never collides with an existing id.
type Directory struct {
	mu    sync.Mutex
	users []models.User
}

// NewDirectory creates a directory seeded with the initial users
func NewDirectory() *Directory {
	return &Directory{users: models.SeedUsers()}
}

// List returns a copy of the users in insertion order
func (d *Directory) List() []models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.User, len(d.users))
	copy(out, d.users)
	return out
}

// Count returns the number of users
func (d *Directory) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

// Add appends a user with id = count + 1. Emails are not checked for uniqueness.
func (d *Directory) Add(input models.NewUserInput) (models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := utils.ValidateStruct(&input); err != nil {
		details := make(map[string]interface{})
		for k, v := range utils.GetValidationFields(err) {
			details[k] = v
		}
		return models.User{}, &services.DomainError{
			Type:    services.ErrInvalidUser.Type,
			Message: services.ErrInvalidUser.Message,
			Err:     err,
			Details: details,
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	user := models.User{
		ID:    len(d.users) + 1,
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}
	d.users = append(d.users, user)
	return user, nil
}
