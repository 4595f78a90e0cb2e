// Package recipe implements the recipe management use cases
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/ports/inbound"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/platebook/v1/pkg/errors"
	"go.uber.org/zap"
)

const (
	recipeCacheKeyPrefix = "recipe:"
	recipeCacheTTL       = 15 * time.Minute
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	cacheRepo  outbound.CacheRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	cacheRepo outbound.CacheRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		cacheRepo:  cacheRepo,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe with its ingredient lines
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating recipe", zap.String("name", cmd.Name))

	rec, err := recipe.NewRecipe(cmd.Name, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	rec.SetCookingInstructions(cmd.CookingInstructions)
	if cmd.Category != "" {
		rec.SetCategory(cmd.Category)
	}
	if cmd.PrepTimeMinutes > 0 {
		if err := rec.SetPrepTime(time.Duration(cmd.PrepTimeMinutes) * time.Minute); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	for _, line := range cmd.Ingredients {
		ingredient := recipe.Ingredient{
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Category: line.Category,
		}
		if err := rec.AddIngredient(ingredient); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", rec.ID().String()),
		zap.Int("ingredient_count", len(rec.Ingredients())),
	)

	dto := entityToDTO(rec)
	s.cacheRecipe(ctx, dto)
	return dto, nil
}

// UpdateRecipe applies a partial update to an existing recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	rec, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String()).WithCause(err)
	}

	if cmd.Name != nil {
		if err := rec.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := rec.UpdateDescription(*cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.CookingInstructions != nil {
		rec.SetCookingInstructions(*cmd.CookingInstructions)
	}
	if cmd.Category != nil {
		rec.SetCategory(*cmd.Category)
	}
	if cmd.PrepTimeMinutes != nil {
		if err := rec.SetPrepTime(time.Duration(*cmd.PrepTimeMinutes) * time.Minute); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Ingredients != nil {
		lines := make([]recipe.Ingredient, len(cmd.Ingredients))
		for i, line := range cmd.Ingredients {
			lines[i] = recipe.Ingredient{
				Name:     line.Name,
				Quantity: line.Quantity,
				Unit:     line.Unit,
				Category: line.Category,
			}
		}
		if err := rec.ReplaceIngredients(lines); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Update(ctx, rec); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.invalidateRecipe(ctx, rec.ID())

	dto := entityToDTO(rec)
	s.cacheRecipe(ctx, dto)
	return dto, nil
}

// DeleteRecipe removes a recipe and its ingredient lines
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if _, err := s.recipeRepo.FindByID(ctx, recipeID); err != nil {
		return errors.NewRecipeNotFoundError(recipeID.String()).WithCause(err)
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.invalidateRecipe(ctx, recipeID)
	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// GetRecipeByID retrieves a recipe, serving from cache when possible
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	if dto := s.getCachedRecipe(ctx, recipeID); dto != nil {
		return dto, nil
	}

	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String()).WithCause(err)
	}

	dto := entityToDTO(rec)
	s.cacheRecipe(ctx, dto)
	return dto, nil
}

// ListRecipes retrieves a page of recipes
func (s *RecipeService) ListRecipes(ctx context.Context, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	recipes, total, err := s.recipeRepo.FindAll(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]inbound.RecipeDTO, len(recipes))
	for i, rec := range recipes {
		dtos[i] = *entityToDTO(rec)
	}

	totalPages := (total + pageSize - 1) / pageSize

	return &inbound.RecipeList{
		Recipes:    dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Cache helpers. Cache failures are logged and swallowed: the database
// remains the source of truth.

func (s *RecipeService) cacheKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("%s%s", recipeCacheKeyPrefix, recipeID.String())
}

func (s *RecipeService) getCachedRecipe(ctx context.Context, recipeID uuid.UUID) *inbound.RecipeDTO {
	if s.cacheRepo == nil {
		return nil
	}

	data, err := s.cacheRepo.Get(ctx, s.cacheKey(recipeID))
	if err != nil || data == nil {
		return nil
	}

	var dto inbound.RecipeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.logger.Warn("Failed to unmarshal cached recipe",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		return nil
	}
	return &dto
}

func (s *RecipeService) cacheRecipe(ctx context.Context, dto *inbound.RecipeDTO) {
	if s.cacheRepo == nil {
		return
	}

	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, s.cacheKey(dto.ID), data, recipeCacheTTL); err != nil {
		s.logger.Warn("Failed to cache recipe",
			zap.String("recipe_id", dto.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *RecipeService) invalidateRecipe(ctx context.Context, recipeID uuid.UUID) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(ctx, s.cacheKey(recipeID)); err != nil {
		s.logger.Warn("Failed to invalidate recipe cache",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
	}
}

// entityToDTO converts a domain recipe to a DTO
func entityToDTO(rec *recipe.Recipe) *inbound.RecipeDTO {
	lines := rec.Ingredients()
	ingredients := make([]inbound.IngredientDTO, len(lines))
	for i, line := range lines {
		ingredients[i] = inbound.IngredientDTO{
			ID:       line.ID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Category: line.Category,
		}
	}

	return &inbound.RecipeDTO{
		ID:                  rec.ID(),
		Name:                rec.Name(),
		Description:         rec.Description(),
		CookingInstructions: rec.CookingInstructions(),
		Category:            rec.Category(),
		PrepTimeMinutes:     int(rec.PrepTime() / time.Minute),
		Ingredients:         ingredients,
		CreatedAt:           rec.CreatedAt(),
		UpdatedAt:           rec.UpdatedAt(),
	}
}
