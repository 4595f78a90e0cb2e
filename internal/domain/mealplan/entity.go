// Package mealplan contains the domain logic for scheduling recipes into
// dated meal slots. A meal plan is one (date, meal type) slot holding zero
// or more recipe references; uniqueness of the slot is enforced by the store.
package mealplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/shared"
)

// MealType identifies the meal slot within a day
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
)

// Valid reports whether the meal type is one of the known slots
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// sortRank orders meal types within a day: breakfast, lunch, dinner
func (m MealType) sortRank() int {
	switch m {
	case MealTypeBreakfast:
		return 0
	case MealTypeLunch:
		return 1
	default:
		return 2
	}
}

// Less orders meal types chronologically within a day
func (m MealType) Less(other MealType) bool {
	return m.sortRank() < other.sortRank()
}

// MealPlan represents one scheduled meal slot. It holds recipe references
// only; ingredient lines are resolved through the recipe repository on demand.
type MealPlan struct {
	id uuid.UUID

	name     string
	date     time.Time
	mealType MealType

	recipeIDs []uuid.UUID

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewMealPlan creates a new MealPlan with validation. The date is truncated
// to day precision in UTC.
func NewMealPlan(name string, date time.Time, mealType MealType) (*MealPlan, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if date.IsZero() {
		return nil, ErrDateRequired
	}
	if !mealType.Valid() {
		return nil, ErrInvalidMealType
	}

	now := time.Now()
	p := &MealPlan{
		id:        uuid.New(),
		name:      name,
		date:      TruncateToDay(date),
		mealType:  mealType,
		createdAt: now,
		updatedAt: now,
		events:    []shared.DomainEvent{},
	}

	p.addEvent(MealPlanCreatedEvent{
		MealPlanID: p.id,
		Date:       p.date,
		MealType:   mealType,
		CreatedAt:  now,
	})

	return p, nil
}

// Rehydrate reconstructs a meal plan from persisted state, for repository
// mappers only.
func Rehydrate(
	id uuid.UUID,
	name string,
	date time.Time,
	mealType MealType,
	recipeIDs []uuid.UUID,
	createdAt, updatedAt time.Time,
) *MealPlan {
	return &MealPlan{
		id:        id,
		name:      name,
		date:      TruncateToDay(date),
		mealType:  mealType,
		recipeIDs: recipeIDs,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    []shared.DomainEvent{},
	}
}

// TruncateToDay normalizes a timestamp to midnight UTC of the same calendar day
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ID returns the meal plan's unique identifier
func (p *MealPlan) ID() uuid.UUID {
	return p.id
}

// Name returns the meal plan's name
func (p *MealPlan) Name() string {
	return p.name
}

// Date returns the scheduled day (midnight UTC)
func (p *MealPlan) Date() time.Time {
	return p.date
}

// MealType returns the meal slot
func (p *MealPlan) MealType() MealType {
	return p.mealType
}

// RecipeIDs returns the referenced recipe identifiers
func (p *MealPlan) RecipeIDs() []uuid.UUID {
	return p.recipeIDs
}

// CreatedAt returns when the meal plan was created
func (p *MealPlan) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the meal plan was last updated
func (p *MealPlan) UpdatedAt() time.Time {
	return p.updatedAt
}

// Rename updates the meal plan name
func (p *MealPlan) Rename(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	p.name = name
	p.updatedAt = time.Now()
	return nil
}

// Reschedule moves the plan to a different day or meal slot. The store's
// (date, meal_type) uniqueness still applies on save.
func (p *MealPlan) Reschedule(date time.Time, mealType MealType) error {
	if date.IsZero() {
		return ErrDateRequired
	}
	if !mealType.Valid() {
		return ErrInvalidMealType
	}

	p.date = TruncateToDay(date)
	p.mealType = mealType
	p.updatedAt = time.Now()
	return nil
}

// AssignRecipe adds a recipe reference to the slot. Duplicate references
// are rejected; a slot may hold any number of distinct recipes.
func (p *MealPlan) AssignRecipe(recipeID uuid.UUID) error {
	if recipeID == uuid.Nil {
		return ErrInvalidRecipeRef
	}
	for _, id := range p.recipeIDs {
		if id == recipeID {
			return ErrRecipeAlreadyAssigned
		}
	}

	p.recipeIDs = append(p.recipeIDs, recipeID)
	p.updatedAt = time.Now()

	p.addEvent(RecipeAssignedEvent{
		MealPlanID: p.id,
		RecipeID:   recipeID,
		AssignedAt: p.updatedAt,
	})

	return nil
}

// RemoveRecipe drops a recipe reference from the slot
func (p *MealPlan) RemoveRecipe(recipeID uuid.UUID) error {
	for i, id := range p.recipeIDs {
		if id == recipeID {
			p.recipeIDs = append(p.recipeIDs[:i], p.recipeIDs[i+1:]...)
			p.updatedAt = time.Now()
			return nil
		}
	}
	return ErrRecipeNotAssigned
}

// addEvent adds a domain event to be dispatched
func (p *MealPlan) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

// Events returns and clears pending domain events
func (p *MealPlan) Events() []shared.DomainEvent {
	events := p.events
	p.events = []shared.DomainEvent{}
	return events
}
