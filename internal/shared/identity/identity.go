// Package identity carries the authenticated caller from the HTTP layer into
// services without tying them to gin.
package identity

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
	// RoleService is held by the order/ticket backend that confirms purchases.
	RoleService Role = "SERVICE"
)

// Context keys set by the JWT middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// Actor is whoever is calling an operation
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// FromContext reads the actor stored by the auth middleware. The zero Actor
// is returned for anonymous requests.
func FromContext(c *gin.Context) Actor {
	var actor Actor
	if v, ok := c.Get(ContextUserID); ok {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				actor.UserID = id
			}
		}
	}
	if v, ok := c.Get(ContextUserEmail); ok {
		actor.Email, _ = v.(string)
	}
	if v, ok := c.Get(ContextUserRole); ok {
		if s, ok := v.(string); ok {
			actor.Role = Role(s)
		}
	}
	return actor
}
