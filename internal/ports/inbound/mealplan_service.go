package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
)

// MealPlanService defines the use cases for scheduling recipes into meal slots
type MealPlanService interface {
	CreateMealPlan(ctx context.Context, cmd CreateMealPlanCommand) (*MealPlanDTO, error)
	UpdateMealPlan(ctx context.Context, cmd UpdateMealPlanCommand) (*MealPlanDTO, error)
	DeleteMealPlan(ctx context.Context, mealPlanID uuid.UUID) error
	GetMealPlanByID(ctx context.Context, mealPlanID uuid.UUID) (*MealPlanDTO, error)

	// ListMealPlans returns plans with dates in [start, end], ordered by
	// date then meal type
	ListMealPlans(ctx context.Context, start, end time.Time) ([]MealPlanDTO, error)

	AssignRecipe(ctx context.Context, mealPlanID, recipeID uuid.UUID) (*MealPlanDTO, error)
	RemoveRecipe(ctx context.Context, mealPlanID, recipeID uuid.UUID) (*MealPlanDTO, error)
}

// CreateMealPlanCommand contains data for creating a meal plan
type CreateMealPlanCommand struct {
	Name      string
	Date      time.Time
	MealType  mealplan.MealType
	RecipeIDs []uuid.UUID
}

// UpdateMealPlanCommand contains data for updating a meal plan.
// Nil fields are left unchanged.
type UpdateMealPlanCommand struct {
	MealPlanID uuid.UUID
	Name       *string
	Date       *time.Time
	MealType   *mealplan.MealType
}

// MealPlanDTO represents a meal plan over the wire
type MealPlanDTO struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Date      time.Time         `json:"date"`
	MealType  mealplan.MealType `json:"meal_type"`
	RecipeIDs []uuid.UUID       `json:"recipe_ids"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
