// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
)

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, params PaginationParams) (*RecipeList, error)
}

// CreateIngredientCommand contains data for one ingredient line
type CreateIngredientCommand struct {
	Name     string
	Quantity float64
	Unit     string
	Category recipe.IngredientCategory
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Name                string
	Description         string
	CookingInstructions string
	Category            recipe.CategoryType
	PrepTimeMinutes     int
	Ingredients         []CreateIngredientCommand
}

// UpdateRecipeCommand contains data for updating a recipe.
// Nil fields are left unchanged.
type UpdateRecipeCommand struct {
	RecipeID            uuid.UUID
	Name                *string
	Description         *string
	CookingInstructions *string
	Category            *recipe.CategoryType
	PrepTimeMinutes     *int
	Ingredients         []CreateIngredientCommand // nil keeps existing lines
}

// PaginationParams controls list pagination
type PaginationParams struct {
	Page     int
	PageSize int
}

// IngredientDTO represents an ingredient line over the wire
type IngredientDTO struct {
	ID       uuid.UUID                 `json:"id"`
	Name     string                    `json:"name"`
	Quantity float64                   `json:"quantity"`
	Unit     string                    `json:"unit"`
	Category recipe.IngredientCategory `json:"category,omitempty"`
}

// RecipeDTO represents a recipe over the wire
type RecipeDTO struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Description         string              `json:"description,omitempty"`
	CookingInstructions string              `json:"cooking_instructions,omitempty"`
	Category            recipe.CategoryType `json:"category"`
	PrepTimeMinutes     int                 `json:"prep_time_minutes"`
	Ingredients         []IngredientDTO     `json:"ingredients"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// RecipeList is a paginated set of recipes
type RecipeList struct {
	Recipes    []RecipeDTO `json:"recipes"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}
