package mealplan

import "errors"

// Domain errors for meal plan operations

var (
	ErrNameRequired          = errors.New("meal plan name is required")
	ErrDateRequired          = errors.New("meal plan date is required")
	ErrInvalidMealType       = errors.New("meal type must be BREAKFAST, LUNCH or DINNER")
	ErrInvalidRecipeRef      = errors.New("recipe reference must be a valid identifier")
	ErrRecipeAlreadyAssigned = errors.New("recipe is already assigned to this meal plan")
	ErrRecipeNotAssigned     = errors.New("recipe is not assigned to this meal plan")
	ErrMealPlanNotFound      = errors.New("meal plan not found")
	ErrSlotTaken             = errors.New("a meal plan already exists for this date and meal type")
)
