package gorm_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
	gormrepo "github.com/platebook/v1/internal/infrastructure/persistence/gorm"
	"github.com/platebook/v1/internal/infrastructure/persistence/sqlite"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/platebook/v1/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	gormlogger "gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the repositories against an in-memory sqlite
// database, one fresh database per test.
type RepositoryTestSuite struct {
	suite.Suite

	recipes   outbound.RecipeRepository
	mealPlans outbound.MealPlanRepository
	lists     outbound.ShoppingListRepository

	ctx context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase(":memory:", gormlogger.Silent)
	require.NoError(suite.T(), err)

	suite.recipes = gormrepo.NewRecipeRepository(db)
	suite.mealPlans = gormrepo.NewMealPlanRepository(db)
	suite.lists = gormrepo.NewShoppingListRepository(db)
	suite.ctx = context.Background()
}

func (suite *RepositoryTestSuite) day(offset int) time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func (suite *RepositoryTestSuite) TestRecipe_RoundTripPreservesIngredientOrder() {
	rec := testutils.NewRecipeBuilder().
		WithName("Ratatouille").
		WithIngredient("eggplant", 1, "piece", recipe.IngredientCategoryVegetable).
		WithIngredient("zucchini", 2, "piece", recipe.IngredientCategoryVegetable).
		WithIngredient("olive oil", 30, "ml", recipe.IngredientCategoryCondiment).
		Build()

	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, rec))

	loaded, err := suite.recipes.FindByID(suite.ctx, rec.ID())
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Ratatouille", loaded.Name())
	lines := loaded.Ingredients()
	require.Len(suite.T(), lines, 3)
	assert.Equal(suite.T(), "eggplant", lines[0].Name)
	assert.Equal(suite.T(), "zucchini", lines[1].Name)
	assert.Equal(suite.T(), "olive oil", lines[2].Name)
}

func (suite *RepositoryTestSuite) TestRecipe_UpdateReplacesIngredientLines() {
	rec := testutils.NewRecipeBuilder().
		WithIngredient("egg", 2, "piece", recipe.IngredientCategoryOther).
		Build()
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, rec))

	require.NoError(suite.T(), rec.ReplaceIngredients([]recipe.Ingredient{
		{Name: "tofu", Quantity: 200, Unit: "g", Category: recipe.IngredientCategoryOther},
	}))
	require.NoError(suite.T(), suite.recipes.Update(suite.ctx, rec))

	loaded, err := suite.recipes.FindByID(suite.ctx, rec.ID())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), loaded.Ingredients(), 1)
	assert.Equal(suite.T(), "tofu", loaded.Ingredients()[0].Name)
}

func (suite *RepositoryTestSuite) TestRecipe_FindByIDUnknown() {
	_, err := suite.recipes.FindByID(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)
}

func (suite *RepositoryTestSuite) TestMealPlan_SlotUniquenessEnforced() {
	first := testutils.NewMealPlanBuilder().
		WithDate(suite.day(0)).
		WithMealType(mealplan.MealTypeDinner).
		Build()
	require.NoError(suite.T(), suite.mealPlans.Create(suite.ctx, first))

	second := testutils.NewMealPlanBuilder().
		WithDate(suite.day(0)).
		WithMealType(mealplan.MealTypeDinner).
		Build()
	assert.Error(suite.T(), suite.mealPlans.Create(suite.ctx, second))
}

func (suite *RepositoryTestSuite) TestMealPlan_FindByDateRangeOrdersByDateThenSlot() {
	dinnerDayTwo := testutils.NewMealPlanBuilder().WithDate(suite.day(1)).WithMealType(mealplan.MealTypeDinner).Build()
	lunchDayOne := testutils.NewMealPlanBuilder().WithDate(suite.day(0)).WithMealType(mealplan.MealTypeLunch).Build()
	breakfastDayOne := testutils.NewMealPlanBuilder().WithDate(suite.day(0)).WithMealType(mealplan.MealTypeBreakfast).Build()

	for _, plan := range []*mealplan.MealPlan{dinnerDayTwo, lunchDayOne, breakfastDayOne} {
		require.NoError(suite.T(), suite.mealPlans.Create(suite.ctx, plan))
	}

	plans, err := suite.mealPlans.FindByDateRange(suite.ctx, suite.day(0), suite.day(6))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), plans, 3)
	assert.Equal(suite.T(), breakfastDayOne.ID(), plans[0].ID())
	assert.Equal(suite.T(), lunchDayOne.ID(), plans[1].ID())
	assert.Equal(suite.T(), dinnerDayTwo.ID(), plans[2].ID())
}

func (suite *RepositoryTestSuite) TestMealPlan_FindByDateRangeExcludesOutside() {
	inside := testutils.NewMealPlanBuilder().WithDate(suite.day(2)).Build()
	outside := testutils.NewMealPlanBuilder().WithDate(suite.day(10)).Build()
	require.NoError(suite.T(), suite.mealPlans.Create(suite.ctx, inside))
	require.NoError(suite.T(), suite.mealPlans.Create(suite.ctx, outside))

	plans, err := suite.mealPlans.FindByDateRange(suite.ctx, suite.day(0), suite.day(6))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), plans, 1)
	assert.Equal(suite.T(), inside.ID(), plans[0].ID())
}

func (suite *RepositoryTestSuite) TestMealPlan_RecipeAssignmentOrderSurvives() {
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	plan := testutils.NewMealPlanBuilder().
		WithRecipe(first).
		WithRecipe(second).
		WithRecipe(third).
		Build()
	require.NoError(suite.T(), suite.mealPlans.Create(suite.ctx, plan))

	loaded, err := suite.mealPlans.FindByID(suite.ctx, plan.ID())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []uuid.UUID{first, second, third}, loaded.RecipeIDs())
}

func (suite *RepositoryTestSuite) TestMealPlan_FindByDateAndTypeFreeSlot() {
	plan, err := suite.mealPlans.FindByDateAndType(suite.ctx, suite.day(0), mealplan.MealTypeBreakfast)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), plan)
}

func (suite *RepositoryTestSuite) newList(name string, items []shoppinglist.Item) *shoppinglist.ShoppingList {
	list, err := shoppinglist.NewShoppingList(name, suite.day(0), suite.day(6), items)
	require.NoError(suite.T(), err)
	return list
}

func (suite *RepositoryTestSuite) TestShoppingList_CreateWithItemsRoundTrip() {
	list := suite.newList("Week 11", []shoppinglist.Item{
		testutils.NewShoppingItem("egg", 5, "piece", recipe.IngredientCategoryOther),
		testutils.NewShoppingItem("butter", 10, "g", recipe.IngredientCategoryDairy),
		testutils.NewShoppingItem("lettuce", 100, "g", recipe.IngredientCategoryVegetable),
	})

	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	loaded, err := suite.lists.FindByID(suite.ctx, list.ID())
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Week 11", loaded.Name())
	items := loaded.Items()
	require.Len(suite.T(), items, 3)
	assert.Equal(suite.T(), "egg", items[0].IngredientName)
	assert.Equal(suite.T(), "butter", items[1].IngredientName)
	assert.Equal(suite.T(), "lettuce", items[2].IngredientName)
	assert.Equal(suite.T(), 5.0, items[0].TotalQuantity)
	assert.False(suite.T(), items[0].IsPurchased)
}

func (suite *RepositoryTestSuite) TestShoppingList_CreateWithItemsIsAtomic() {
	// Two items sharing an ID make the batch insert fail after the header
	// row has been written inside the transaction.
	sharedID := uuid.New()
	egg := testutils.NewShoppingItem("egg", 5, "piece", recipe.IngredientCategoryOther)
	butter := testutils.NewShoppingItem("butter", 10, "g", recipe.IngredientCategoryDairy)
	egg.ID = sharedID
	butter.ID = sharedID

	list := shoppinglist.Rehydrate(uuid.New(), "Week 11", suite.day(0), suite.day(6),
		[]shoppinglist.Item{egg, butter}, time.Now().UTC(), time.Now().UTC())

	require.Error(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	// Neither the header nor any item row survives the rollback.
	_, err := suite.lists.FindByID(suite.ctx, list.ID())
	assert.ErrorIs(suite.T(), err, shoppinglist.ErrListNotFound)

	all, err := suite.lists.FindAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), all)

	items, err := suite.lists.FindItemsByPurchaseStatus(suite.ctx, list.ID(), false)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), items)
}

func (suite *RepositoryTestSuite) TestShoppingList_FindByDateRangeMatchesOverlap() {
	list := suite.newList("Week 11", nil)
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	overlapping, err := suite.lists.FindByDateRange(suite.ctx, suite.day(5), suite.day(12))
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), overlapping, 1)

	disjoint, err := suite.lists.FindByDateRange(suite.ctx, suite.day(7), suite.day(12))
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), disjoint)
}

func (suite *RepositoryTestSuite) TestShoppingList_AddItemAppendsAfterExisting() {
	list := suite.newList("Week 11", []shoppinglist.Item{
		testutils.NewShoppingItem("egg", 5, "piece", recipe.IngredientCategoryOther),
	})
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	added, err := suite.lists.AddItem(suite.ctx, list.ID(),
		testutils.NewShoppingItem("coffee", 250, "g", recipe.IngredientCategoryOther))
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), added)

	loaded, err := suite.lists.FindByID(suite.ctx, list.ID())
	require.NoError(suite.T(), err)
	items := loaded.Items()
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), "egg", items[0].IngredientName)
	assert.Equal(suite.T(), "coffee", items[1].IngredientName)

	// Adding to a list with no items starts the ordering from scratch.
	empty := suite.newList("Week 12", nil)
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, empty))

	_, err = suite.lists.AddItem(suite.ctx, empty.ID(),
		testutils.NewShoppingItem("tea", 100, "g", recipe.IngredientCategoryOther))
	require.NoError(suite.T(), err)

	loaded, err = suite.lists.FindByID(suite.ctx, empty.ID())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), loaded.Items(), 1)
	assert.Equal(suite.T(), "tea", loaded.Items()[0].IngredientName)
}

func (suite *RepositoryTestSuite) TestShoppingList_AddItemToUnknownList() {
	_, err := suite.lists.AddItem(suite.ctx, uuid.New(),
		testutils.NewShoppingItem("coffee", 250, "g", recipe.IngredientCategoryOther))
	assert.ErrorIs(suite.T(), err, shoppinglist.ErrListNotFound)
}

func (suite *RepositoryTestSuite) TestShoppingList_MarkItemPurchased() {
	list := suite.newList("Week 11", []shoppinglist.Item{
		testutils.NewShoppingItem("egg", 5, "piece", recipe.IngredientCategoryOther),
		testutils.NewShoppingItem("butter", 10, "g", recipe.IngredientCategoryDairy),
	})
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	itemID := list.Items()[0].ID
	require.NoError(suite.T(), suite.lists.MarkItemPurchased(suite.ctx, itemID, true))

	purchased, err := suite.lists.FindItemsByPurchaseStatus(suite.ctx, list.ID(), true)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), purchased, 1)
	assert.Equal(suite.T(), "egg", purchased[0].IngredientName)

	remaining, err := suite.lists.FindItemsByPurchaseStatus(suite.ctx, list.ID(), false)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), remaining, 1)
	assert.Equal(suite.T(), "butter", remaining[0].IngredientName)
}

func (suite *RepositoryTestSuite) TestShoppingList_FindItemsByCategory() {
	list := suite.newList("Week 11", []shoppinglist.Item{
		testutils.NewShoppingItem("butter", 10, "g", recipe.IngredientCategoryDairy),
		testutils.NewShoppingItem("cheese", 30, "g", recipe.IngredientCategoryDairy),
		testutils.NewShoppingItem("lettuce", 100, "g", recipe.IngredientCategoryVegetable),
	})
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	dairy, err := suite.lists.FindItemsByCategory(suite.ctx, list.ID(), recipe.IngredientCategoryDairy)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), dairy, 2)
	assert.Equal(suite.T(), "butter", dairy[0].IngredientName)
	assert.Equal(suite.T(), "cheese", dairy[1].IngredientName)
}

func (suite *RepositoryTestSuite) TestShoppingList_RemoveItem() {
	list := suite.newList("Week 11", []shoppinglist.Item{
		testutils.NewShoppingItem("egg", 5, "piece", recipe.IngredientCategoryOther),
	})
	require.NoError(suite.T(), suite.lists.CreateWithItems(suite.ctx, list))

	require.NoError(suite.T(), suite.lists.RemoveItem(suite.ctx, list.Items()[0].ID))

	loaded, err := suite.lists.FindByID(suite.ctx, list.ID())
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), loaded.Items())
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
