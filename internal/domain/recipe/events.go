package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the recipe domain

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	Name      string
	CreatedAt time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// IngredientAddedEvent is raised when an ingredient line is added to a recipe
type IngredientAddedEvent struct {
	RecipeID     uuid.UUID
	IngredientID uuid.UUID
	AddedAt      time.Time
}

func (e IngredientAddedEvent) EventName() string {
	return "recipe.ingredient.added"
}

func (e IngredientAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// RecipeUpdatedEvent is raised when recipe attributes change
type RecipeUpdatedEvent struct {
	RecipeID  uuid.UUID
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}
