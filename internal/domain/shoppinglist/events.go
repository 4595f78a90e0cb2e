package shoppinglist

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the shopping list domain

// ShoppingListCreatedEvent is raised when a list is created
type ShoppingListCreatedEvent struct {
	ShoppingListID uuid.UUID
	Name           string
	ItemCount      int
	CreatedAt      time.Time
}

func (e ShoppingListCreatedEvent) EventName() string {
	return "shoppinglist.created"
}

func (e ShoppingListCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}
