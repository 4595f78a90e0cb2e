package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the meal plan domain

// MealPlanCreatedEvent is raised when a new meal plan is created
type MealPlanCreatedEvent struct {
	MealPlanID uuid.UUID
	Date       time.Time
	MealType   MealType
	CreatedAt  time.Time
}

func (e MealPlanCreatedEvent) EventName() string {
	return "mealplan.created"
}

func (e MealPlanCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeAssignedEvent is raised when a recipe is scheduled into a slot
type RecipeAssignedEvent struct {
	MealPlanID uuid.UUID
	RecipeID   uuid.UUID
	AssignedAt time.Time
}

func (e RecipeAssignedEvent) EventName() string {
	return "mealplan.recipe.assigned"
}

func (e RecipeAssignedEvent) OccurredAt() time.Time {
	return e.AssignedAt
}
