// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/shared"
)

// Recipe represents the core recipe entity in our domain.
// A recipe owns its ingredient lines: deleting the recipe deletes the lines.
type Recipe struct {
	id uuid.UUID

	name                string
	description         string
	cookingInstructions string
	category            CategoryType

	ingredients []Ingredient

	prepTime time.Duration

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(name, description string) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		id:          uuid.New(),
		name:        name,
		description: description,
		category:    CategoryTypeOther,
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}

	r.addEvent(RecipeCreatedEvent{
		RecipeID:  r.id,
		Name:      name,
		CreatedAt: now,
	})

	return r, nil
}

// Rehydrate reconstructs a recipe from persisted state. It bypasses creation
// events and is intended for repository mappers only.
func Rehydrate(
	id uuid.UUID,
	name, description, cookingInstructions string,
	category CategoryType,
	ingredients []Ingredient,
	prepTime time.Duration,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:                  id,
		name:                name,
		description:         description,
		cookingInstructions: cookingInstructions,
		category:            category,
		ingredients:         ingredients,
		prepTime:            prepTime,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		events:              []shared.DomainEvent{},
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Name returns the recipe's name
func (r *Recipe) Name() string {
	return r.name
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// CookingInstructions returns the recipe's cooking instructions
func (r *Recipe) CookingInstructions() string {
	return r.cookingInstructions
}

// Category returns the recipe's category
func (r *Recipe) Category() CategoryType {
	return r.category
}

// Ingredients returns the recipe's ingredient lines in declared order
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// PrepTime returns the preparation time
func (r *Recipe) PrepTime() time.Duration {
	return r.prepTime
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// Rename updates the recipe name with validation
func (r *Recipe) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	r.name = name
	r.touch()
	return nil
}

// UpdateDescription updates the recipe description with validation
func (r *Recipe) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	r.description = description
	r.touch()
	return nil
}

// SetCookingInstructions replaces the cooking instructions
func (r *Recipe) SetCookingInstructions(instructions string) {
	r.cookingInstructions = instructions
	r.touch()
}

// SetCategory updates the recipe category
func (r *Recipe) SetCategory(category CategoryType) {
	r.category = category
	r.touch()
}

// SetPrepTime updates the preparation time
func (r *Recipe) SetPrepTime(d time.Duration) error {
	if d < 0 {
		return ErrInvalidPrepTime
	}
	r.prepTime = d
	r.touch()
	return nil
}

// AddIngredient adds a new ingredient line to the recipe
func (r *Recipe) AddIngredient(ingredient Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}

	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}

	r.ingredients = append(r.ingredients, ingredient)
	r.touch()

	r.addEvent(IngredientAddedEvent{
		RecipeID:     r.id,
		IngredientID: ingredient.ID,
		AddedAt:      r.updatedAt,
	})

	return nil
}

// ReplaceIngredients swaps the full ingredient line set after validating each line
func (r *Recipe) ReplaceIngredients(ingredients []Ingredient) error {
	for i := range ingredients {
		if err := ingredients[i].Validate(); err != nil {
			return err
		}
		if ingredients[i].ID == uuid.Nil {
			ingredients[i].ID = uuid.New()
		}
	}

	r.ingredients = ingredients
	r.touch()
	return nil
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now()
	r.addEvent(RecipeUpdatedEvent{
		RecipeID:  r.id,
		UpdatedAt: r.updatedAt,
	})
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = []shared.DomainEvent{}
	return events
}

// validateName validates recipe name
func validateName(name string) error {
	if len(name) < 1 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}

// validateDescription validates recipe description
func validateDescription(description string) error {
	if len(description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}
