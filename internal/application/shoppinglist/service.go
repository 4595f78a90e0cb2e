// Package shoppinglist provides the application layer for shopping lists,
// including the generation engine that consolidates ingredient lines across
// the meal plans of a date range.
package shoppinglist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
	"github.com/platebook/v1/internal/ports/inbound"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/platebook/v1/pkg/errors"
	"go.uber.org/zap"
)

// ShoppingListService implements the shopping list use cases
type ShoppingListService struct {
	listRepo     outbound.ShoppingListRepository
	mealPlanRepo outbound.MealPlanRepository
	recipeRepo   outbound.RecipeRepository
	logger       *zap.Logger
}

// NewShoppingListService creates a new shopping list service. The repository
// handles are fixed at construction; the service keeps no other state across
// calls, so concurrent generation runs are independent.
func NewShoppingListService(
	listRepo outbound.ShoppingListRepository,
	mealPlanRepo outbound.MealPlanRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.ShoppingListService {
	return &ShoppingListService{
		listRepo:     listRepo,
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.Named("shoppinglist-service"),
	}
}

// GenerateFromMealPlans runs one generation: a bounded sequence of reads
// followed by exactly one atomic write. No partial list is ever visible.
func (s *ShoppingListService) GenerateFromMealPlans(ctx context.Context, cmd inbound.GenerateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	s.logger.Info("Generating shopping list from meal plans",
		zap.String("name", cmd.Name),
		zap.Time("start_date", cmd.StartDate),
		zap.Time("end_date", cmd.EndDate),
	)

	if cmd.Name == "" {
		return nil, errors.NewValidationError("shopping list name is required")
	}

	// Plan dates are stored at day precision, so the bounds are truncated
	// the same way. The range check happens before any lookup.
	start := mealplan.TruncateToDay(cmd.StartDate)
	end := mealplan.TruncateToDay(cmd.EndDate)
	if start.After(end) {
		return nil, errors.NewInvalidDateRangeError(
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)
	}

	plans, err := s.mealPlanRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans in range", err)
	}
	if len(plans) == 0 {
		return nil, errors.NewNoMealPlansFoundError(
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)
	}

	// Meal plans carry recipe references only, so each referenced recipe
	// takes a second round-trip to expand into ingredient lines. Resolved
	// recipes are reused across slots within this run.
	agg := shoppinglist.NewAggregator()
	resolved := make(map[uuid.UUID]*recipe.Recipe)

	for _, plan := range plans {
		for _, recipeID := range plan.RecipeIDs() {
			rec, ok := resolved[recipeID]
			if !ok {
				rec, err = s.recipeRepo.FindByID(ctx, recipeID)
				if err != nil {
					// A meal plan must not reference a recipe that cannot be
					// resolved; the whole run aborts with nothing written.
					s.logger.Error("Referenced recipe could not be resolved",
						zap.String("meal_plan_id", plan.ID().String()),
						zap.String("recipe_id", recipeID.String()),
						zap.Error(err),
					)
					return nil, errors.NewRecipeResolutionError(recipeID.String(), err)
				}
				resolved[recipeID] = rec
			}

			for _, line := range rec.Ingredients() {
				agg.Add(line)
			}
		}
	}

	list, err := shoppinglist.NewShoppingList(cmd.Name, start, end, agg.Items())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build shopping list")
	}

	if err := s.listRepo.CreateWithItems(ctx, list); err != nil {
		return nil, errors.NewPersistenceFailureError("shopping list create", err)
	}

	for _, event := range list.Events() {
		s.logger.Debug("Domain event", zap.String("event", event.EventName()))
	}

	dto := entityToDTO(list)

	s.logger.Info("Shopping list generated successfully",
		zap.String("shopping_list_id", dto.ID.String()),
		zap.Int("item_count", len(dto.Items)),
		zap.Int("meal_plan_count", len(plans)),
		zap.Int("recipe_count", len(resolved)),
	)

	return dto, nil
}

// CreateShoppingList creates a list from manually supplied items
func (s *ShoppingListService) CreateShoppingList(ctx context.Context, cmd inbound.CreateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	if cmd.StartDate.After(cmd.EndDate) {
		return nil, errors.NewInvalidDateRangeError(
			cmd.StartDate.Format("2006-01-02"),
			cmd.EndDate.Format("2006-01-02"),
		)
	}

	list, err := shoppinglist.NewShoppingList(cmd.Name, cmd.StartDate, cmd.EndDate, itemsFromInputs(cmd.Items))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.listRepo.CreateWithItems(ctx, list); err != nil {
		return nil, errors.NewPersistenceFailureError("shopping list create", err)
	}

	return entityToDTO(list), nil
}

// UpdateShoppingList updates the header and optionally replaces the items
func (s *ShoppingListService) UpdateShoppingList(ctx context.Context, cmd inbound.UpdateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	list, err := s.listRepo.FindByID(ctx, cmd.ListID)
	if err != nil {
		return nil, errors.NewShoppingListNotFoundError(cmd.ListID.String()).WithCause(err)
	}

	start := list.DateRangeStart()
	end := list.DateRangeEnd()
	if cmd.StartDate != nil {
		start = *cmd.StartDate
	}
	if cmd.EndDate != nil {
		end = *cmd.EndDate
	}
	if start.After(end) {
		return nil, errors.NewInvalidDateRangeError(start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	name := list.Name()
	if cmd.Name != nil {
		name = *cmd.Name
	}

	items := list.Items()
	if cmd.Items != nil {
		items = itemsFromInputs(cmd.Items)
	}

	updated := shoppinglist.Rehydrate(list.ID(), name, start, end, items, list.CreatedAt(), time.Now())
	if err := s.listRepo.Update(ctx, updated); err != nil {
		return nil, errors.NewDatabaseError("update shopping list", err)
	}

	return entityToDTO(updated), nil
}

// DeleteShoppingList deletes a list, cascading to its items
func (s *ShoppingListService) DeleteShoppingList(ctx context.Context, listID uuid.UUID) error {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		return errors.NewShoppingListNotFoundError(listID.String()).WithCause(err)
	}

	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return errors.NewDatabaseError("delete shopping list", err)
	}

	s.logger.Info("Shopping list deleted", zap.String("shopping_list_id", listID.String()))
	return nil
}

// GetShoppingListByID retrieves a list with its items
func (s *ShoppingListService) GetShoppingListByID(ctx context.Context, listID uuid.UUID) (*inbound.ShoppingListDTO, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, errors.NewShoppingListNotFoundError(listID.String()).WithCause(err)
	}
	return entityToDTO(list), nil
}

// ListShoppingLists retrieves all lists
func (s *ShoppingListService) ListShoppingLists(ctx context.Context) ([]inbound.ShoppingListDTO, error) {
	lists, err := s.listRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list shopping lists", err)
	}

	dtos := make([]inbound.ShoppingListDTO, len(lists))
	for i, l := range lists {
		dtos[i] = *entityToDTO(l)
	}
	return dtos, nil
}

// ListShoppingListsByDateRange retrieves lists overlapping [start, end]
func (s *ShoppingListService) ListShoppingListsByDateRange(ctx context.Context, start, end time.Time) ([]inbound.ShoppingListDTO, error) {
	if start.After(end) {
		return nil, errors.NewInvalidDateRangeError(start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	lists, err := s.listRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("list shopping lists by date range", err)
	}

	dtos := make([]inbound.ShoppingListDTO, len(lists))
	for i, l := range lists {
		dtos[i] = *entityToDTO(l)
	}
	return dtos, nil
}

// AddItem appends one item to an existing list
func (s *ShoppingListService) AddItem(ctx context.Context, cmd inbound.AddShoppingItemCommand) (*inbound.ShoppingListItemDTO, error) {
	item := shoppinglist.Item{
		IngredientName: cmd.Item.IngredientName,
		TotalQuantity:  cmd.Item.TotalQuantity,
		Unit:           cmd.Item.Unit,
		Category:       cmd.Item.Category,
		IsPurchased:    cmd.Item.IsPurchased,
	}
	if err := item.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	created, err := s.listRepo.AddItem(ctx, cmd.ListID, item)
	if err != nil {
		return nil, errors.NewDatabaseError("add shopping list item", err)
	}

	dto := itemToDTO(*created)
	return &dto, nil
}

// UpdateItem rewrites one existing item
func (s *ShoppingListService) UpdateItem(ctx context.Context, cmd inbound.UpdateShoppingItemCommand) error {
	item := shoppinglist.Item{
		ID:             cmd.ItemID,
		IngredientName: cmd.IngredientName,
		TotalQuantity:  cmd.TotalQuantity,
		Unit:           cmd.Unit,
		Category:       cmd.Category,
		IsPurchased:    cmd.IsPurchased,
	}
	if err := item.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := s.listRepo.UpdateItem(ctx, item); err != nil {
		return errors.NewShoppingItemNotFoundError(cmd.ItemID.String()).WithCause(err)
	}
	return nil
}

// RemoveItem drops one item from its list
func (s *ShoppingListService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.listRepo.RemoveItem(ctx, itemID); err != nil {
		return errors.NewShoppingItemNotFoundError(itemID.String()).WithCause(err)
	}
	return nil
}

// MarkItemPurchased toggles the purchase status of one item
func (s *ShoppingListService) MarkItemPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error {
	if err := s.listRepo.MarkItemPurchased(ctx, itemID, purchased); err != nil {
		return errors.NewShoppingItemNotFoundError(itemID.String()).WithCause(err)
	}
	return nil
}

// GetItemsByCategory filters a list's items by ingredient category
func (s *ShoppingListService) GetItemsByCategory(ctx context.Context, listID uuid.UUID, category recipe.IngredientCategory) ([]inbound.ShoppingListItemDTO, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		return nil, errors.NewShoppingListNotFoundError(listID.String()).WithCause(err)
	}

	items, err := s.listRepo.FindItemsByCategory(ctx, listID, category)
	if err != nil {
		return nil, errors.NewDatabaseError("list items by category", err)
	}
	return itemsToDTOs(items), nil
}

// GetItemsByPurchaseStatus filters a list's items by purchase status
func (s *ShoppingListService) GetItemsByPurchaseStatus(ctx context.Context, listID uuid.UUID, purchased bool) ([]inbound.ShoppingListItemDTO, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		return nil, errors.NewShoppingListNotFoundError(listID.String()).WithCause(err)
	}

	items, err := s.listRepo.FindItemsByPurchaseStatus(ctx, listID, purchased)
	if err != nil {
		return nil, errors.NewDatabaseError("list items by purchase status", err)
	}
	return itemsToDTOs(items), nil
}

// Helper methods

func itemsFromInputs(inputs []inbound.ShoppingItemInput) []shoppinglist.Item {
	items := make([]shoppinglist.Item, len(inputs))
	for i, in := range inputs {
		items[i] = shoppinglist.Item{
			IngredientName: in.IngredientName,
			TotalQuantity:  in.TotalQuantity,
			Unit:           in.Unit,
			Category:       in.Category,
			IsPurchased:    in.IsPurchased,
		}
	}
	return items
}

func itemToDTO(item shoppinglist.Item) inbound.ShoppingListItemDTO {
	return inbound.ShoppingListItemDTO{
		ID:             item.ID,
		IngredientName: item.IngredientName,
		TotalQuantity:  item.TotalQuantity,
		Unit:           item.Unit,
		Category:       item.Category,
		IsPurchased:    item.IsPurchased,
	}
}

func itemsToDTOs(items []shoppinglist.Item) []inbound.ShoppingListItemDTO {
	dtos := make([]inbound.ShoppingListItemDTO, len(items))
	for i, item := range items {
		dtos[i] = itemToDTO(item)
	}
	return dtos
}

// entityToDTO converts a domain shopping list to a DTO
func entityToDTO(list *shoppinglist.ShoppingList) *inbound.ShoppingListDTO {
	return &inbound.ShoppingListDTO{
		ID:             list.ID(),
		Name:           list.Name(),
		DateRangeStart: list.DateRangeStart(),
		DateRangeEnd:   list.DateRangeEnd(),
		Items:          itemsToDTOs(list.Items()),
		CreatedAt:      list.CreatedAt(),
		UpdatedAt:      list.UpdatedAt(),
	}
}
