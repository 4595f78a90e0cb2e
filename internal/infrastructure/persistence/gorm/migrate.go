package gorm

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&RecipeModel{},
		&IngredientModel{},
		&MealPlanModel{},
		&MealPlanRecipeModel{},
		&ShoppingListModel{},
		&ShoppingListItemModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
