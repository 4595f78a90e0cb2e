// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID                  uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name                string    `gorm:"type:varchar(200);not null;index"`
	Description         string    `gorm:"type:text"`
	CookingInstructions string    `gorm:"type:text"`
	Category            string    `gorm:"type:varchar(50);index"`

	// Stored in minutes
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Ingredients []IngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for recipes
func (RecipeModel) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when one was not set
func (m *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IngredientModel represents one ingredient line of a recipe. Position
// preserves the authoring order of the lines.
type IngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Quantity float64   `gorm:"not null;default:0"`
	Unit     string    `gorm:"type:varchar(50);not null"`
	Category string    `gorm:"type:varchar(50);index"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for ingredients
func (IngredientModel) TableName() string {
	return "ingredients"
}

// BeforeCreate assigns an ID when one was not set
func (m *IngredientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealPlanModel represents the GORM model for meal plans. The composite
// unique index enforces at most one plan per (date, meal type) slot.
type MealPlanModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Date     time.Time `gorm:"not null;uniqueIndex:idx_meal_plans_slot"`
	MealType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_meal_plans_slot"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Recipe references live in meal_plan_recipes, managed by the
	// repository so assignment order survives round-trips.
	RecipeRefs []MealPlanRecipeModel `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for meal plans
func (MealPlanModel) TableName() string {
	return "meal_plans"
}

// BeforeCreate assigns an ID when one was not set
func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ShoppingListModel represents the GORM model for shopping list headers
type ShoppingListModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name           string    `gorm:"type:varchar(200);not null"`
	DateRangeStart time.Time `gorm:"not null;index"`
	DateRangeEnd   time.Time `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Items []ShoppingListItemModel `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for shopping lists
func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

// BeforeCreate assigns an ID when one was not set
func (m *ShoppingListModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ShoppingListItemModel represents one consolidated line of a shopping
// list. Position preserves the order the engine emitted the lines in.
type ShoppingListItemModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	ShoppingListID uuid.UUID `gorm:"type:char(36);not null;index"`
	IngredientName string    `gorm:"type:varchar(200);not null"`
	TotalQuantity  float64   `gorm:"not null;default:0"`
	Unit           string    `gorm:"type:varchar(50);not null"`
	Category       string    `gorm:"type:varchar(50);index"`
	IsPurchased    bool      `gorm:"default:false;index"`
	Position       int       `gorm:"not null;default:0"`
}

// TableName returns the table name for shopping list items
func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// BeforeCreate assigns an ID when one was not set
func (m *ShoppingListItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealPlanRecipeModel is the join table between meal plans and recipes.
// Position preserves the order recipes were assigned to the slot.
type MealPlanRecipeModel struct {
	MealPlanID uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Position   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for the meal plan / recipe join
func (MealPlanRecipeModel) TableName() string {
	return "meal_plan_recipes"
}
