package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe with its ingredient lines
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update rewrites a recipe and replaces its ingredient lines
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RecipeModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":                 model.Name,
				"description":          model.Description,
				"cooking_instructions": model.CookingInstructions,
				"category":             model.Category,
				"prep_time_minutes":    model.PrepTimeMinutes,
				"updated_at":           model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}

		// Ingredient lines are replaced wholesale to keep line order stable
		if err := tx.Where("recipe_id = ?", model.ID).Delete(&IngredientModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredient lines: %w", err)
		}
		if len(model.Ingredients) > 0 {
			if err := tx.Create(&model.Ingredients).Error; err != nil {
				return fmt.Errorf("failed to write ingredient lines: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a recipe and, by cascade, its ingredient lines
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&IngredientModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient lines: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&MealPlanRecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete meal plan references: %w", err)
		}

		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID finds a recipe by ID with its ordered ingredient lines
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}

	return ModelToRecipe(&model), nil
}

// FindAll returns a page of recipes and the total count
func (r *RecipeRepository) FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, int(total), nil
}

// FindByIDs resolves a batch of recipes by their IDs
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN ?", ids).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}
