// Package mealplan implements the meal scheduling use cases
package mealplan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/ports/inbound"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/platebook/v1/pkg/errors"
	"go.uber.org/zap"
)

// MealPlanService implements the meal plan use cases
type MealPlanService struct {
	mealPlanRepo outbound.MealPlanRepository
	recipeRepo   outbound.RecipeRepository
	logger       *zap.Logger
}

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(
	mealPlanRepo outbound.MealPlanRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.MealPlanService {
	return &MealPlanService{
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.Named("mealplan-service"),
	}
}

// CreateMealPlan schedules a new meal slot. The slot must be free: at most
// one plan may occupy a (date, meal type) pair.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, cmd inbound.CreateMealPlanCommand) (*inbound.MealPlanDTO, error) {
	s.logger.Info("Creating meal plan",
		zap.String("name", cmd.Name),
		zap.Time("date", cmd.Date),
		zap.String("meal_type", string(cmd.MealType)),
	)

	plan, err := mealplan.NewMealPlan(cmd.Name, cmd.Date, cmd.MealType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.ensureSlotFree(ctx, plan.Date(), plan.MealType(), uuid.Nil); err != nil {
		return nil, err
	}

	for _, recipeID := range cmd.RecipeIDs {
		if _, err := s.recipeRepo.FindByID(ctx, recipeID); err != nil {
			return nil, errors.NewRecipeNotFoundError(recipeID.String()).WithCause(err)
		}
		if err := plan.AssignRecipe(recipeID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.mealPlanRepo.Create(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("create meal plan", err)
	}

	s.logger.Info("Meal plan created successfully",
		zap.String("meal_plan_id", plan.ID().String()),
		zap.Int("recipe_count", len(plan.RecipeIDs())),
	)

	return entityToDTO(plan), nil
}

// UpdateMealPlan applies a partial update. Rescheduling re-checks the target
// slot for a conflicting plan.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, cmd inbound.UpdateMealPlanCommand) (*inbound.MealPlanDTO, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, cmd.MealPlanID)
	if err != nil {
		return nil, errors.NewMealPlanNotFoundError(cmd.MealPlanID.String()).WithCause(err)
	}

	if cmd.Name != nil {
		if err := plan.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Date != nil || cmd.MealType != nil {
		date := plan.Date()
		mealType := plan.MealType()
		if cmd.Date != nil {
			date = *cmd.Date
		}
		if cmd.MealType != nil {
			mealType = *cmd.MealType
		}

		if err := s.ensureSlotFree(ctx, mealplan.TruncateToDay(date), mealType, plan.ID()); err != nil {
			return nil, err
		}
		if err := plan.Reschedule(date, mealType); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("update meal plan", err)
	}

	return entityToDTO(plan), nil
}

// DeleteMealPlan removes a meal plan
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, mealPlanID uuid.UUID) error {
	if _, err := s.mealPlanRepo.FindByID(ctx, mealPlanID); err != nil {
		return errors.NewMealPlanNotFoundError(mealPlanID.String()).WithCause(err)
	}

	if err := s.mealPlanRepo.Delete(ctx, mealPlanID); err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}

	s.logger.Info("Meal plan deleted", zap.String("meal_plan_id", mealPlanID.String()))
	return nil
}

// GetMealPlanByID retrieves a meal plan
func (s *MealPlanService) GetMealPlanByID(ctx context.Context, mealPlanID uuid.UUID) (*inbound.MealPlanDTO, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, mealPlanID)
	if err != nil {
		return nil, errors.NewMealPlanNotFoundError(mealPlanID.String()).WithCause(err)
	}
	return entityToDTO(plan), nil
}

// ListMealPlans retrieves plans in [start, end], ordered by date then meal type
func (s *MealPlanService) ListMealPlans(ctx context.Context, start, end time.Time) ([]inbound.MealPlanDTO, error) {
	if start.After(end) {
		return nil, errors.NewInvalidDateRangeError(start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	plans, err := s.mealPlanRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans", err)
	}

	dtos := make([]inbound.MealPlanDTO, len(plans))
	for i, plan := range plans {
		dtos[i] = *entityToDTO(plan)
	}
	return dtos, nil
}

// AssignRecipe adds a recipe reference to a meal plan
func (s *MealPlanService) AssignRecipe(ctx context.Context, mealPlanID, recipeID uuid.UUID) (*inbound.MealPlanDTO, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, mealPlanID)
	if err != nil {
		return nil, errors.NewMealPlanNotFoundError(mealPlanID.String()).WithCause(err)
	}

	if _, err := s.recipeRepo.FindByID(ctx, recipeID); err != nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String()).WithCause(err)
	}

	if err := plan.AssignRecipe(recipeID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("assign recipe to meal plan", err)
	}

	return entityToDTO(plan), nil
}

// RemoveRecipe drops a recipe reference from a meal plan
func (s *MealPlanService) RemoveRecipe(ctx context.Context, mealPlanID, recipeID uuid.UUID) (*inbound.MealPlanDTO, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, mealPlanID)
	if err != nil {
		return nil, errors.NewMealPlanNotFoundError(mealPlanID.String()).WithCause(err)
	}

	if err := plan.RemoveRecipe(recipeID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("remove recipe from meal plan", err)
	}

	return entityToDTO(plan), nil
}

// ensureSlotFree checks the (date, meal type) slot. A plan may keep its own
// slot; any other occupant is a conflict.
func (s *MealPlanService) ensureSlotFree(ctx context.Context, date time.Time, mealType mealplan.MealType, selfID uuid.UUID) error {
	existing, err := s.mealPlanRepo.FindByDateAndType(ctx, date, mealType)
	if err != nil {
		return errors.NewDatabaseError("check meal plan slot", err)
	}
	if existing != nil && existing.ID() != selfID {
		return errors.NewMealSlotAlreadyPlannedError(date.Format("2006-01-02"), string(mealType))
	}
	return nil
}

// entityToDTO converts a domain meal plan to a DTO
func entityToDTO(plan *mealplan.MealPlan) *inbound.MealPlanDTO {
	return &inbound.MealPlanDTO{
		ID:        plan.ID(),
		Name:      plan.Name(),
		Date:      plan.Date(),
		MealType:  plan.MealType(),
		RecipeIDs: plan.RecipeIDs(),
		CreatedAt: plan.CreatedAt(),
		UpdatedAt: plan.UpdatedAt(),
	}
}
