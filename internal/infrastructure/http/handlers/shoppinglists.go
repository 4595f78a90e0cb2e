package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	"github.com/platebook/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// ShoppingListHandlers handles shopping list REST API requests
type ShoppingListHandlers struct {
	listService inbound.ShoppingListService
	validate    *validator.Validate
	logger      *zap.Logger
	metrics     *monitoring.MetricsCollector
}

// NewShoppingListHandlers creates a new shopping list handlers instance. metrics may be nil.
func NewShoppingListHandlers(listService inbound.ShoppingListService, logger *zap.Logger, metrics *monitoring.MetricsCollector) *ShoppingListHandlers {
	return &ShoppingListHandlers{
		listService: listService,
		validate:    validator.New(),
		logger:      logger,
		metrics:     metrics,
	}
}

type generateShoppingListRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type shoppingItemRequest struct {
	IngredientName string  `json:"ingredient_name" validate:"required,max=200"`
	TotalQuantity  float64 `json:"total_quantity" validate:"gte=0"`
	Unit           string  `json:"unit" validate:"required,max=50"`
	Category       string  `json:"category"`
	IsPurchased    bool    `json:"is_purchased"`
}

type createShoppingListRequest struct {
	Name      string                `json:"name" validate:"required,max=200"`
	StartDate string                `json:"start_date" validate:"required"`
	EndDate   string                `json:"end_date" validate:"required"`
	Items     []shoppingItemRequest `json:"items" validate:"dive"`
}

type updateShoppingListRequest struct {
	Name      *string               `json:"name" validate:"omitempty,min=1,max=200"`
	StartDate *string               `json:"start_date"`
	EndDate   *string               `json:"end_date"`
	Items     []shoppingItemRequest `json:"items" validate:"omitempty,dive"`
}

type markPurchasedRequest struct {
	IsPurchased bool `json:"is_purchased"`
}

// GenerateShoppingList handles POST /api/v1/shopping-lists/generate
func (h *ShoppingListHandlers) GenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	var req generateShoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeValidationError(w, r, "start_date must use YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeValidationError(w, r, "end_date must use YYYY-MM-DD")
		return
	}

	began := time.Now()
	dto, err := h.listService.GenerateFromMealPlans(r.Context(), inbound.GenerateShoppingListCommand{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordGeneration("failure", 0, time.Since(began).Seconds())
		}
		writeError(w, r, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordGeneration("success", len(dto.Items), time.Since(began).Seconds())
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// CreateShoppingList handles POST /api/v1/shopping-lists
func (h *ShoppingListHandlers) CreateShoppingList(w http.ResponseWriter, r *http.Request) {
	var req createShoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeValidationError(w, r, "start_date must use YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeValidationError(w, r, "end_date must use YYYY-MM-DD")
		return
	}

	dto, err := h.listService.CreateShoppingList(r.Context(), inbound.CreateShoppingListCommand{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Items:     toItemInputs(req.Items),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// UpdateShoppingList handles PUT /api/v1/shopping-lists/{listID}
func (h *ShoppingListHandlers) UpdateShoppingList(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseUUIDParam(chi.URLParam(r, "listID"))
	if !ok {
		writeValidationError(w, r, "invalid shopping list id")
		return
	}

	var req updateShoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	cmd := inbound.UpdateShoppingListCommand{ListID: listID, Name: req.Name}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			writeValidationError(w, r, "start_date must use YYYY-MM-DD")
			return
		}
		cmd.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			writeValidationError(w, r, "end_date must use YYYY-MM-DD")
			return
		}
		cmd.EndDate = &end
	}
	if req.Items != nil {
		cmd.Items = toItemInputs(req.Items)
	}

	dto, err := h.listService.UpdateShoppingList(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// DeleteShoppingList handles DELETE /api/v1/shopping-lists/{listID}
func (h *ShoppingListHandlers) DeleteShoppingList(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseUUIDParam(chi.URLParam(r, "listID"))
	if !ok {
		writeValidationError(w, r, "invalid shopping list id")
		return
	}

	if err := h.listService.DeleteShoppingList(r.Context(), listID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "shopping list deleted"})
}

// GetShoppingList handles GET /api/v1/shopping-lists/{listID}
func (h *ShoppingListHandlers) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseUUIDParam(chi.URLParam(r, "listID"))
	if !ok {
		writeValidationError(w, r, "invalid shopping list id")
		return
	}

	dto, err := h.listService.GetShoppingListByID(r.Context(), listID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// ListShoppingLists handles GET /api/v1/shopping-lists with optional
// start and end query parameters for range overlap filtering
func (h *ShoppingListHandlers) ListShoppingLists(w http.ResponseWriter, r *http.Request) {
	rawStart := r.URL.Query().Get("start")
	rawEnd := r.URL.Query().Get("end")

	if rawStart != "" || rawEnd != "" {
		start, end, ok := parseDateRange(w, r)
		if !ok {
			return
		}
		dtos, err := h.listService.ListShoppingListsByDateRange(r.Context(), start, end)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dtos})
		return
	}

	dtos, err := h.listService.ListShoppingLists(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dtos})
}

// AddItem handles POST /api/v1/shopping-lists/{listID}/items
func (h *ShoppingListHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseUUIDParam(chi.URLParam(r, "listID"))
	if !ok {
		writeValidationError(w, r, "invalid shopping list id")
		return
	}

	var req shoppingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	dto, err := h.listService.AddItem(r.Context(), inbound.AddShoppingItemCommand{
		ListID: listID,
		Item:   toItemInput(req),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// ListItems handles GET /api/v1/shopping-lists/{listID}/items with optional
// category or purchased filters
func (h *ShoppingListHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseUUIDParam(chi.URLParam(r, "listID"))
	if !ok {
		writeValidationError(w, r, "invalid shopping list id")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		items, err := h.listService.GetItemsByCategory(r.Context(), listID, recipe.IngredientCategory(category))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: items})
		return
	}

	if raw := r.URL.Query().Get("purchased"); raw != "" {
		purchased := raw == "true"
		items, err := h.listService.GetItemsByPurchaseStatus(r.Context(), listID, purchased)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: items})
		return
	}

	dto, err := h.listService.GetShoppingListByID(r.Context(), listID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto.Items})
}

// UpdateItem handles PUT /api/v1/shopping-items/{itemID}
func (h *ShoppingListHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseUUIDParam(chi.URLParam(r, "itemID"))
	if !ok {
		writeValidationError(w, r, "invalid item id")
		return
	}

	var req shoppingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	err := h.listService.UpdateItem(r.Context(), inbound.UpdateShoppingItemCommand{
		ItemID:         itemID,
		IngredientName: req.IngredientName,
		TotalQuantity:  req.TotalQuantity,
		Unit:           req.Unit,
		Category:       recipe.IngredientCategory(req.Category),
		IsPurchased:    req.IsPurchased,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "item updated"})
}

// RemoveItem handles DELETE /api/v1/shopping-items/{itemID}
func (h *ShoppingListHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseUUIDParam(chi.URLParam(r, "itemID"))
	if !ok {
		writeValidationError(w, r, "invalid item id")
		return
	}

	if err := h.listService.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "item removed"})
}

// MarkItemPurchased handles PATCH /api/v1/shopping-items/{itemID}/purchased
func (h *ShoppingListHandlers) MarkItemPurchased(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseUUIDParam(chi.URLParam(r, "itemID"))
	if !ok {
		writeValidationError(w, r, "invalid item id")
		return
	}

	var req markPurchasedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, r, "invalid request body")
		return
	}

	if err := h.listService.MarkItemPurchased(r.Context(), itemID, req.IsPurchased); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "item updated"})
}

func toItemInput(req shoppingItemRequest) inbound.ShoppingItemInput {
	return inbound.ShoppingItemInput{
		IngredientName: req.IngredientName,
		TotalQuantity:  req.TotalQuantity,
		Unit:           req.Unit,
		Category:       recipe.IngredientCategory(req.Category),
		IsPurchased:    req.IsPurchased,
	}
}

func toItemInputs(reqs []shoppingItemRequest) []inbound.ShoppingItemInput {
	inputs := make([]inbound.ShoppingItemInput, len(reqs))
	for i, req := range reqs {
		inputs[i] = toItemInput(req)
	}
	return inputs
}
