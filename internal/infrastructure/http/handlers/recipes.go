package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	"github.com/platebook/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// RecipeHandlers handles recipe REST API requests
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	validate      *validator.Validate
	logger        *zap.Logger
	metrics       *monitoring.MetricsCollector
}

// NewRecipeHandlers creates a new recipe handlers instance. metrics may be nil.
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger, metrics *monitoring.MetricsCollector) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		validate:      validator.New(),
		logger:        logger,
		metrics:       metrics,
	}
}

type ingredientRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"required,max=50"`
	Category string  `json:"category"`
}

type createRecipeRequest struct {
	Name                string              `json:"name" validate:"required,min=1,max=200"`
	Description         string              `json:"description" validate:"max=2000"`
	CookingInstructions string              `json:"cooking_instructions"`
	Category            string              `json:"category"`
	PrepTimeMinutes     int                 `json:"prep_time_minutes" validate:"gte=0"`
	Ingredients         []ingredientRequest `json:"ingredients" validate:"dive"`
}

type updateRecipeRequest struct {
	Name                *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Description         *string             `json:"description" validate:"omitempty,max=2000"`
	CookingInstructions *string             `json:"cooking_instructions"`
	Category            *string             `json:"category"`
	PrepTimeMinutes     *int                `json:"prep_time_minutes" validate:"omitempty,gte=0"`
	Ingredients         []ingredientRequest `json:"ingredients" validate:"omitempty,dive"`
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	cmd := inbound.CreateRecipeCommand{
		Name:                req.Name,
		Description:         req.Description,
		CookingInstructions: req.CookingInstructions,
		Category:            recipe.CategoryType(req.Category),
		PrepTimeMinutes:     req.PrepTimeMinutes,
		Ingredients:         toIngredientCommands(req.Ingredients),
	}

	dto, err := h.recipeService.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordRecipeCreated()
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// UpdateRecipe handles PUT /api/v1/recipes/{recipeID}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := parseUUIDParam(chi.URLParam(r, "recipeID"))
	if !ok {
		writeValidationError(w, r, "invalid recipe id")
		return
	}

	var req updateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	cmd := inbound.UpdateRecipeCommand{
		RecipeID:            recipeID,
		Name:                req.Name,
		Description:         req.Description,
		CookingInstructions: req.CookingInstructions,
		PrepTimeMinutes:     req.PrepTimeMinutes,
	}
	if req.Category != nil {
		category := recipe.CategoryType(*req.Category)
		cmd.Category = &category
	}
	if req.Ingredients != nil {
		cmd.Ingredients = toIngredientCommands(req.Ingredients)
	}

	dto, err := h.recipeService.UpdateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{recipeID}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := parseUUIDParam(chi.URLParam(r, "recipeID"))
	if !ok {
		writeValidationError(w, r, "invalid recipe id")
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "recipe deleted"})
}

// GetRecipe handles GET /api/v1/recipes/{recipeID}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := parseUUIDParam(chi.URLParam(r, "recipeID"))
	if !ok {
		writeValidationError(w, r, "invalid recipe id")
		return
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := inbound.PaginationParams{Page: 1, PageSize: 20}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.Page = n
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.PageSize = n
		}
	}

	list, err := h.recipeService.ListRecipes(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

func toIngredientCommands(reqs []ingredientRequest) []inbound.CreateIngredientCommand {
	cmds := make([]inbound.CreateIngredientCommand, len(reqs))
	for i, req := range reqs {
		cmds[i] = inbound.CreateIngredientCommand{
			Name:     req.Name,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Category: recipe.IngredientCategory(req.Category),
		}
	}
	return cmds
}
