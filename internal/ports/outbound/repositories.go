// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
)

// RecipeRepository defines the interface for recipe persistence.
// FindByID resolves the recipe together with its ordered ingredient lines.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)
}

// MealPlanRepository defines the interface for meal plan persistence.
// The store enforces at most one plan per (date, meal type) slot.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *mealplan.MealPlan) error
	Update(ctx context.Context, plan *mealplan.MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error)

	// FindByDateRange returns all plans whose date falls in [start, end],
	// ordered by date then meal type. It never fails on an empty range.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*mealplan.MealPlan, error)

	// FindByDateAndType returns the plan occupying a slot, or nil when free
	FindByDateAndType(ctx context.Context, date time.Time, mealType mealplan.MealType) (*mealplan.MealPlan, error)
}

// ShoppingListRepository defines the interface for shopping list persistence
type ShoppingListRepository interface {
	// CreateWithItems persists the list header and all items atomically:
	// all items or none.
	CreateWithItems(ctx context.Context, list *shoppinglist.ShoppingList) error

	Update(ctx context.Context, list *shoppinglist.ShoppingList) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*shoppinglist.ShoppingList, error)
	FindAll(ctx context.Context) ([]*shoppinglist.ShoppingList, error)

	// FindByDateRange returns lists whose date range overlaps [start, end]
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*shoppinglist.ShoppingList, error)

	// Item-level mutations, applied after a list has been generated
	AddItem(ctx context.Context, listID uuid.UUID, item shoppinglist.Item) (*shoppinglist.Item, error)
	UpdateItem(ctx context.Context, item shoppinglist.Item) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	MarkItemPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error

	// Item-level queries
	FindItemsByCategory(ctx context.Context, listID uuid.UUID, category recipe.IngredientCategory) ([]shoppinglist.Item, error)
	FindItemsByPurchaseStatus(ctx context.Context, listID uuid.UUID, purchased bool) ([]shoppinglist.Item, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Batch operations
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
	MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error

	// Counter operations
	Increment(ctx context.Context, key string) (int64, error)
	Decrement(ctx context.Context, key string) (int64, error)
}
