package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
)

// ShoppingListService defines the use cases for shopping lists, including
// the generation engine that consolidates ingredients across a date range
// of meal plans.
type ShoppingListService interface {
	// GenerateFromMealPlans runs the aggregation engine: it collects every
	// recipe scheduled in [StartDate, EndDate], folds ingredient quantities
	// by exact (name, unit, category) key, and persists the result as a new
	// shopping list in a single atomic write.
	GenerateFromMealPlans(ctx context.Context, cmd GenerateShoppingListCommand) (*ShoppingListDTO, error)

	CreateShoppingList(ctx context.Context, cmd CreateShoppingListCommand) (*ShoppingListDTO, error)
	UpdateShoppingList(ctx context.Context, cmd UpdateShoppingListCommand) (*ShoppingListDTO, error)
	DeleteShoppingList(ctx context.Context, listID uuid.UUID) error
	GetShoppingListByID(ctx context.Context, listID uuid.UUID) (*ShoppingListDTO, error)
	ListShoppingLists(ctx context.Context) ([]ShoppingListDTO, error)
	ListShoppingListsByDateRange(ctx context.Context, start, end time.Time) ([]ShoppingListDTO, error)

	AddItem(ctx context.Context, cmd AddShoppingItemCommand) (*ShoppingListItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdateShoppingItemCommand) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	MarkItemPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error

	GetItemsByCategory(ctx context.Context, listID uuid.UUID, category recipe.IngredientCategory) ([]ShoppingListItemDTO, error)
	GetItemsByPurchaseStatus(ctx context.Context, listID uuid.UUID, purchased bool) ([]ShoppingListItemDTO, error)
}

// GenerateShoppingListCommand triggers one generation run
type GenerateShoppingListCommand struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// ShoppingItemInput is one manually supplied item
type ShoppingItemInput struct {
	IngredientName string
	TotalQuantity  float64
	Unit           string
	Category       recipe.IngredientCategory
	IsPurchased    bool
}

// CreateShoppingListCommand creates a list without running the engine
type CreateShoppingListCommand struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Items     []ShoppingItemInput
}

// UpdateShoppingListCommand contains data for updating a list.
// Nil fields are left unchanged; a nil Items keeps the current items.
type UpdateShoppingListCommand struct {
	ListID    uuid.UUID
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Items     []ShoppingItemInput
}

// AddShoppingItemCommand appends one item to an existing list
type AddShoppingItemCommand struct {
	ListID uuid.UUID
	Item   ShoppingItemInput
}

// UpdateShoppingItemCommand rewrites one existing item
type UpdateShoppingItemCommand struct {
	ItemID         uuid.UUID
	IngredientName string
	TotalQuantity  float64
	Unit           string
	Category       recipe.IngredientCategory
	IsPurchased    bool
}

// ShoppingListItemDTO represents one consolidated line over the wire
type ShoppingListItemDTO struct {
	ID             uuid.UUID                 `json:"id"`
	IngredientName string                    `json:"ingredient_name"`
	TotalQuantity  float64                   `json:"total_quantity"`
	Unit           string                    `json:"unit"`
	Category       recipe.IngredientCategory `json:"category,omitempty"`
	IsPurchased    bool                      `json:"is_purchased"`
}

// ShoppingListDTO represents a shopping list over the wire
type ShoppingListDTO struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	DateRangeStart time.Time             `json:"date_range_start"`
	DateRangeEnd   time.Time             `json:"date_range_end"`
	Items          []ShoppingListItemDTO `json:"items"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
