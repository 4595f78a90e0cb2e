// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gormModels "github.com/platebook/v1/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gormModels.AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedDatabase populates the database with a small demo dataset:
// two recipes scheduled into two meal slots of the same day.
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var recipeCount int64
	db.Model(&gormModels.RecipeModel{}).Count(&recipeCount)
	if recipeCount > 0 {
		return nil // Already seeded
	}

	omeletteID := uuid.New()
	saladID := uuid.New()

	recipes := []gormModels.RecipeModel{
		{
			ID:                  omeletteID,
			Name:                "Cheese Omelette",
			Description:         "A quick three-egg omelette",
			CookingInstructions: "Whisk the eggs, melt the butter, cook over medium heat and fold.",
			Category:            "MAIN_DISH",
			PrepTimeMinutes:     10,
			Ingredients: []gormModels.IngredientModel{
				{RecipeID: omeletteID, Name: "egg", Quantity: 3, Unit: "piece", Category: "OTHER", Position: 0},
				{RecipeID: omeletteID, Name: "butter", Quantity: 10, Unit: "g", Category: "DAIRY", Position: 1},
				{RecipeID: omeletteID, Name: "cheese", Quantity: 30, Unit: "g", Category: "DAIRY", Position: 2},
			},
		},
		{
			ID:                  saladID,
			Name:                "Egg Salad",
			Description:         "Boiled egg salad with greens",
			CookingInstructions: "Boil the eggs, chop everything, toss with dressing.",
			Category:            "SALAD",
			PrepTimeMinutes:     15,
			Ingredients: []gormModels.IngredientModel{
				{RecipeID: saladID, Name: "egg", Quantity: 2, Unit: "piece", Category: "OTHER", Position: 0},
				{RecipeID: saladID, Name: "lettuce", Quantity: 100, Unit: "g", Category: "VEGETABLE", Position: 1},
			},
		},
	}

	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			return fmt.Errorf("failed to seed recipes: %w", err)
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	plans := []gormModels.MealPlanModel{
		{
			ID:       uuid.New(),
			Name:     "Breakfast",
			Date:     today,
			MealType: "BREAKFAST",
		},
		{
			ID:       uuid.New(),
			Name:     "Lunch",
			Date:     today,
			MealType: "LUNCH",
		},
	}
	plans[0].RecipeRefs = []gormModels.MealPlanRecipeModel{
		{MealPlanID: plans[0].ID, RecipeID: omeletteID, Position: 0},
	}
	plans[1].RecipeRefs = []gormModels.MealPlanRecipeModel{
		{MealPlanID: plans[1].ID, RecipeID: saladID, Position: 0},
	}

	for i := range plans {
		if err := db.Create(&plans[i]).Error; err != nil {
			return fmt.Errorf("failed to seed meal plans: %w", err)
		}
	}

	return nil
}
