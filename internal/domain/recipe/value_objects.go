package recipe

import (
	"errors"

	"github.com/google/uuid"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents a single ingredient line owned by a recipe.
// Once a line has been folded into a shopping list it is never mutated.
type Ingredient struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Unit     string
	Category IngredientCategory
}

// Validate validates the ingredient line
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if i.Quantity < 0 {
		return errors.New("ingredient quantity cannot be negative")
	}
	if i.Unit == "" {
		return errors.New("ingredient unit is required")
	}
	return nil
}

// IngredientCategory classifies an ingredient line. It is optional on a line;
// the zero value means uncategorized.
type IngredientCategory string

const (
	IngredientCategoryVegetable IngredientCategory = "VEGETABLE"
	IngredientCategoryMeat      IngredientCategory = "MEAT"
	IngredientCategoryFish      IngredientCategory = "FISH"
	IngredientCategoryDairy     IngredientCategory = "DAIRY"
	IngredientCategoryGrain     IngredientCategory = "GRAIN"
	IngredientCategoryFruit     IngredientCategory = "FRUIT"
	IngredientCategorySpice     IngredientCategory = "SPICE"
	IngredientCategoryCondiment IngredientCategory = "CONDIMENT"
	IngredientCategoryOther     IngredientCategory = "OTHER"
)

// CategoryType represents recipe categories
type CategoryType string

const (
	CategoryTypeMainDish CategoryType = "MAIN_DISH"
	CategoryTypeSideDish CategoryType = "SIDE_DISH"
	CategoryTypeSoup     CategoryType = "SOUP"
	CategoryTypeSalad    CategoryType = "SALAD"
	CategoryTypeDessert  CategoryType = "DESSERT"
	CategoryTypeDrink    CategoryType = "DRINK"
	CategoryTypeOther    CategoryType = "OTHER"
)
