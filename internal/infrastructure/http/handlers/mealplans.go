package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	"github.com/platebook/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// MealPlanHandlers handles meal plan REST API requests
type MealPlanHandlers struct {
	mealPlanService inbound.MealPlanService
	validate        *validator.Validate
	logger          *zap.Logger
	metrics         *monitoring.MetricsCollector
}

// NewMealPlanHandlers creates a new meal plan handlers instance. metrics may be nil.
func NewMealPlanHandlers(mealPlanService inbound.MealPlanService, logger *zap.Logger, metrics *monitoring.MetricsCollector) *MealPlanHandlers {
	return &MealPlanHandlers{
		mealPlanService: mealPlanService,
		validate:        validator.New(),
		logger:          logger,
		metrics:         metrics,
	}
}

type createMealPlanRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Date      string   `json:"date" validate:"required"`
	MealType  string   `json:"meal_type" validate:"required,oneof=BREAKFAST LUNCH DINNER"`
	RecipeIDs []string `json:"recipe_ids"`
}

type updateMealPlanRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Date     *string `json:"date"`
	MealType *string `json:"meal_type" validate:"omitempty,oneof=BREAKFAST LUNCH DINNER"`
}

// CreateMealPlan handles POST /api/v1/meal-plans
func (h *MealPlanHandlers) CreateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req createMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeValidationError(w, r, "date must use YYYY-MM-DD")
		return
	}

	recipeIDs := make([]uuid.UUID, 0, len(req.RecipeIDs))
	for _, raw := range req.RecipeIDs {
		id, ok := parseUUIDParam(raw)
		if !ok {
			writeValidationError(w, r, "invalid recipe id: "+raw)
			return
		}
		recipeIDs = append(recipeIDs, id)
	}

	cmd := inbound.CreateMealPlanCommand{
		Name:      req.Name,
		Date:      date,
		MealType:  mealplan.MealType(req.MealType),
		RecipeIDs: recipeIDs,
	}

	dto, err := h.mealPlanService.CreateMealPlan(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMealPlanCreated()
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// UpdateMealPlan handles PUT /api/v1/meal-plans/{mealPlanID}
func (h *MealPlanHandlers) UpdateMealPlan(w http.ResponseWriter, r *http.Request) {
	mealPlanID, ok := parseUUIDParam(chi.URLParam(r, "mealPlanID"))
	if !ok {
		writeValidationError(w, r, "invalid meal plan id")
		return
	}

	var req updateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	cmd := inbound.UpdateMealPlanCommand{
		MealPlanID: mealPlanID,
		Name:       req.Name,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			writeValidationError(w, r, "date must use YYYY-MM-DD")
			return
		}
		cmd.Date = &date
	}
	if req.MealType != nil {
		mealType := mealplan.MealType(*req.MealType)
		cmd.MealType = &mealType
	}

	dto, err := h.mealPlanService.UpdateMealPlan(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// DeleteMealPlan handles DELETE /api/v1/meal-plans/{mealPlanID}
func (h *MealPlanHandlers) DeleteMealPlan(w http.ResponseWriter, r *http.Request) {
	mealPlanID, ok := parseUUIDParam(chi.URLParam(r, "mealPlanID"))
	if !ok {
		writeValidationError(w, r, "invalid meal plan id")
		return
	}

	if err := h.mealPlanService.DeleteMealPlan(r.Context(), mealPlanID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "meal plan deleted"})
}

// GetMealPlan handles GET /api/v1/meal-plans/{mealPlanID}
func (h *MealPlanHandlers) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	mealPlanID, ok := parseUUIDParam(chi.URLParam(r, "mealPlanID"))
	if !ok {
		writeValidationError(w, r, "invalid meal plan id")
		return
	}

	dto, err := h.mealPlanService.GetMealPlanByID(r.Context(), mealPlanID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// ListMealPlans handles GET /api/v1/meal-plans?start=...&end=...
func (h *MealPlanHandlers) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	dtos, err := h.mealPlanService.ListMealPlans(r.Context(), start, end)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dtos})
}

// AssignRecipe handles POST /api/v1/meal-plans/{mealPlanID}/recipes/{recipeID}
func (h *MealPlanHandlers) AssignRecipe(w http.ResponseWriter, r *http.Request) {
	mealPlanID, ok := parseUUIDParam(chi.URLParam(r, "mealPlanID"))
	if !ok {
		writeValidationError(w, r, "invalid meal plan id")
		return
	}
	recipeID, ok := parseUUIDParam(chi.URLParam(r, "recipeID"))
	if !ok {
		writeValidationError(w, r, "invalid recipe id")
		return
	}

	dto, err := h.mealPlanService.AssignRecipe(r.Context(), mealPlanID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// RemoveRecipe handles DELETE /api/v1/meal-plans/{mealPlanID}/recipes/{recipeID}
func (h *MealPlanHandlers) RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	mealPlanID, ok := parseUUIDParam(chi.URLParam(r, "mealPlanID"))
	if !ok {
		writeValidationError(w, r, "invalid meal plan id")
		return
	}
	recipeID, ok := parseUUIDParam(chi.URLParam(r, "recipeID"))
	if !ok {
		writeValidationError(w, r, "invalid recipe id")
		return
	}

	dto, err := h.mealPlanService.RemoveRecipe(r.Context(), mealPlanID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// parseDateRange reads required start and end query parameters. It writes
// the error response itself when parsing fails.
func parseDateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	rawStart := r.URL.Query().Get("start")
	rawEnd := r.URL.Query().Get("end")
	if rawStart == "" || rawEnd == "" {
		writeValidationError(w, r, "start and end query parameters are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(dateLayout, rawStart)
	if err != nil {
		writeValidationError(w, r, "start must use YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, rawEnd)
	if err != nil {
		writeValidationError(w, r, "end must use YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
