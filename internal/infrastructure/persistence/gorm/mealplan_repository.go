package gorm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create persists a meal plan. The unique index on (date, meal_type)
// rejects a second plan for an occupied slot.
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model := MealPlanToModel(plan)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create meal plan: %w", err)
	}
	return nil
}

// Update rewrites a meal plan and replaces its recipe references
func (r *MealPlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	model := MealPlanToModel(plan)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MealPlanModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":       model.Name,
				"date":       model.Date,
				"meal_type":  model.MealType,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update meal plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return mealplan.ErrMealPlanNotFound
		}

		if err := tx.Where("meal_plan_id = ?", model.ID).Delete(&MealPlanRecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe references: %w", err)
		}
		if len(model.RecipeRefs) > 0 {
			if err := tx.Create(&model.RecipeRefs).Error; err != nil {
				return fmt.Errorf("failed to write recipe references: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a meal plan and its recipe references
func (r *MealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", id).Delete(&MealPlanRecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe references: %w", err)
		}

		result := tx.Delete(&MealPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete meal plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return mealplan.ErrMealPlanNotFound
		}
		return nil
	})
}

// FindByID finds a meal plan by ID with its recipe references
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var model MealPlanModel

	err := r.db.WithContext(ctx).
		Preload("RecipeRefs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, mealplan.ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to find meal plan: %w", err)
	}

	return ModelToMealPlan(&model), nil
}

// FindByDateRange returns all plans with dates in [start, end], ordered by
// date then meal type. An empty range yields an empty slice, never an error.
func (r *MealPlanRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*mealplan.MealPlan, error) {
	var models []MealPlanModel

	err := r.db.WithContext(ctx).
		Preload("RecipeRefs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans by date range: %w", err)
	}

	plans := make([]*mealplan.MealPlan, len(models))
	for i := range models {
		plans[i] = ModelToMealPlan(&models[i])
	}

	// Meal type order is domain knowledge (breakfast before lunch before
	// dinner), so the within-day sort happens here rather than in SQL.
	sort.SliceStable(plans, func(i, j int) bool {
		if !plans[i].Date().Equal(plans[j].Date()) {
			return plans[i].Date().Before(plans[j].Date())
		}
		return plans[i].MealType().Less(plans[j].MealType())
	})

	return plans, nil
}

// FindByDateAndType returns the plan occupying a slot, or nil when free
func (r *MealPlanRepository) FindByDateAndType(ctx context.Context, date time.Time, mealType mealplan.MealType) (*mealplan.MealPlan, error) {
	var model MealPlanModel

	err := r.db.WithContext(ctx).
		Preload("RecipeRefs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("date = ? AND meal_type = ?", date, string(mealType)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meal plan by slot: %w", err)
	}

	return ModelToMealPlan(&model), nil
}
