package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameTooShort       = errors.New("recipe name must be at least 1 character")
	ErrNameTooLong        = errors.New("recipe name must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrInvalidPrepTime    = errors.New("preparation time cannot be negative")

	// State errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
