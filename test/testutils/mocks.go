// Package testutils provides mock implementations and test data factories
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockMealPlanRepository provides a mock implementation of MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*mealplan.MealPlan, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindByDateAndType(ctx context.Context, date time.Time, mealType mealplan.MealType) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, date, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

// MockShoppingListRepository provides a mock implementation of
// ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) CreateWithItems(ctx context.Context, list *shoppinglist.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockShoppingListRepository) Update(ctx context.Context, list *shoppinglist.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shoppinglist.ShoppingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shoppinglist.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) FindAll(ctx context.Context) ([]*shoppinglist.ShoppingList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shoppinglist.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*shoppinglist.ShoppingList, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shoppinglist.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) AddItem(ctx context.Context, listID uuid.UUID, item shoppinglist.Item) (*shoppinglist.Item, error) {
	args := m.Called(ctx, listID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shoppinglist.Item), args.Error(1)
}

func (m *MockShoppingListRepository) UpdateItem(ctx context.Context, item shoppinglist.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingListRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockShoppingListRepository) MarkItemPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error {
	args := m.Called(ctx, itemID, purchased)
	return args.Error(0)
}

func (m *MockShoppingListRepository) FindItemsByCategory(ctx context.Context, listID uuid.UUID, category recipe.IngredientCategory) ([]shoppinglist.Item, error) {
	args := m.Called(ctx, listID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shoppinglist.Item), args.Error(1)
}

func (m *MockShoppingListRepository) FindItemsByPurchaseStatus(ctx context.Context, listID uuid.UUID, purchased bool) ([]shoppinglist.Item, error) {
	args := m.Called(ctx, listID, purchased)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shoppinglist.Item), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockCacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	args := m.Called(ctx, items, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) Decrement(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
