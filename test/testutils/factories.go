package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	name        string
	description string
	category    recipe.CategoryType
	prepTime    time.Duration
	ingredients []recipe.Ingredient
}

// NewRecipeBuilder creates a new recipe builder with faked defaults
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		name:        faker.Dinner(),
		description: faker.Sentence(8),
		category:    recipe.CategoryTypeMainDish,
		prepTime:    15 * time.Minute,
	}
}

// WithName sets the recipe name
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.name = name
	return b
}

// WithCategory sets the recipe category
func (b *RecipeBuilder) WithCategory(category recipe.CategoryType) *RecipeBuilder {
	b.category = category
	return b
}

// WithIngredient appends one ingredient line
func (b *RecipeBuilder) WithIngredient(name string, quantity float64, unit string, category recipe.IngredientCategory) *RecipeBuilder {
	b.ingredients = append(b.ingredients, recipe.Ingredient{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Category: category,
	})
	return b
}

// Build constructs the recipe, panicking on invalid test data
func (b *RecipeBuilder) Build() *recipe.Recipe {
	rec, err := recipe.NewRecipe(b.name, b.description)
	if err != nil {
		panic(err)
	}
	rec.SetCategory(b.category)
	if err := rec.SetPrepTime(b.prepTime); err != nil {
		panic(err)
	}
	for _, ing := range b.ingredients {
		if err := rec.AddIngredient(ing); err != nil {
			panic(err)
		}
	}
	return rec
}

// MealPlanBuilder provides a fluent interface for building test meal plans
type MealPlanBuilder struct {
	name      string
	date      time.Time
	mealType  mealplan.MealType
	recipeIDs []uuid.UUID
}

// NewMealPlanBuilder creates a new meal plan builder with defaults
func NewMealPlanBuilder() *MealPlanBuilder {
	return &MealPlanBuilder{
		name:     gofakeit.New(time.Now().UnixNano()).Word(),
		date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		mealType: mealplan.MealTypeDinner,
	}
}

// WithName sets the plan name
func (b *MealPlanBuilder) WithName(name string) *MealPlanBuilder {
	b.name = name
	return b
}

// WithDate sets the plan date
func (b *MealPlanBuilder) WithDate(date time.Time) *MealPlanBuilder {
	b.date = date
	return b
}

// WithMealType sets the meal slot
func (b *MealPlanBuilder) WithMealType(mealType mealplan.MealType) *MealPlanBuilder {
	b.mealType = mealType
	return b
}

// WithRecipe appends a recipe reference
func (b *MealPlanBuilder) WithRecipe(recipeID uuid.UUID) *MealPlanBuilder {
	b.recipeIDs = append(b.recipeIDs, recipeID)
	return b
}

// Build constructs the meal plan, panicking on invalid test data
func (b *MealPlanBuilder) Build() *mealplan.MealPlan {
	plan, err := mealplan.NewMealPlan(b.name, b.date, b.mealType)
	if err != nil {
		panic(err)
	}
	for _, id := range b.recipeIDs {
		if err := plan.AssignRecipe(id); err != nil {
			panic(err)
		}
	}
	return plan
}

// NewShoppingItem builds one shopping list item for tests
func NewShoppingItem(name string, quantity float64, unit string, category recipe.IngredientCategory) shoppinglist.Item {
	return shoppinglist.Item{
		ID:             uuid.New(),
		IngredientName: name,
		TotalQuantity:  quantity,
		Unit:           unit,
		Category:       category,
	}
}
