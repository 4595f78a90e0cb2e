package shoppinglist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
	"github.com/platebook/v1/internal/ports/inbound"
	apperrors "github.com/platebook/v1/pkg/errors"
	"github.com/platebook/v1/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// GenerateTestSuite exercises the shopping list generation run
type GenerateTestSuite struct {
	suite.Suite

	listRepo     *testutils.MockShoppingListRepository
	mealPlanRepo *testutils.MockMealPlanRepository
	recipeRepo   *testutils.MockRecipeRepository
	service      inbound.ShoppingListService

	start time.Time
	end   time.Time
}

func (suite *GenerateTestSuite) SetupTest() {
	suite.listRepo = new(testutils.MockShoppingListRepository)
	suite.mealPlanRepo = new(testutils.MockMealPlanRepository)
	suite.recipeRepo = new(testutils.MockRecipeRepository)
	suite.service = NewShoppingListService(suite.listRepo, suite.mealPlanRepo, suite.recipeRepo, zap.NewNop())

	suite.start = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	suite.end = suite.start.AddDate(0, 0, 6)
}

func (suite *GenerateTestSuite) command() inbound.GenerateShoppingListCommand {
	return inbound.GenerateShoppingListCommand{
		Name:      "Week 11",
		StartDate: suite.start,
		EndDate:   suite.end,
	}
}

func (suite *GenerateTestSuite) assertCode(err error, code apperrors.ErrorCode) {
	var appErr *apperrors.AppError
	require.True(suite.T(), errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(suite.T(), code, appErr.Code)
}

func (suite *GenerateTestSuite) TestInvalidRange_RejectedBeforeAnyLookup() {
	cmd := suite.command()
	cmd.StartDate = suite.end
	cmd.EndDate = suite.start

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), cmd)

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeInvalidDateRange)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "FindByDateRange", mock.Anything, mock.Anything, mock.Anything)
	suite.listRepo.AssertNotCalled(suite.T(), "CreateWithItems", mock.Anything, mock.Anything)
}

func (suite *GenerateTestSuite) TestEmptyRange_NothingWritten() {
	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{}, nil)

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeNoMealPlansFound)
	suite.listRepo.AssertNotCalled(suite.T(), "CreateWithItems", mock.Anything, mock.Anything)
}

func (suite *GenerateTestSuite) TestDanglingRecipeReference_AbortsRun() {
	missing := uuid.New()
	plan := testutils.NewMealPlanBuilder().WithDate(suite.start).WithRecipe(missing).Build()

	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{plan}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, missing).
		Return(nil, recipe.ErrRecipeNotFound)

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeRecipeResolutionFailed)
	suite.listRepo.AssertNotCalled(suite.T(), "CreateWithItems", mock.Anything, mock.Anything)
}

func (suite *GenerateTestSuite) TestPersistenceFailure_IsSurfaced() {
	omelette := testutils.NewRecipeBuilder().
		WithName("Omelette").
		WithIngredient("egg", 3, "piece", recipe.IngredientCategoryOther).
		Build()
	plan := testutils.NewMealPlanBuilder().WithDate(suite.start).WithRecipe(omelette.ID()).Build()

	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{plan}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, omelette.ID()).Return(omelette, nil)
	suite.listRepo.On("CreateWithItems", mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodePersistenceFailure)
}

func (suite *GenerateTestSuite) TestHappyPath_FoldsAcrossPlansAndRecipes() {
	omelette := testutils.NewRecipeBuilder().
		WithName("Omelette").
		WithIngredient("egg", 3, "piece", recipe.IngredientCategoryOther).
		WithIngredient("butter", 10, "g", recipe.IngredientCategoryDairy).
		Build()
	salad := testutils.NewRecipeBuilder().
		WithName("Egg Salad").
		WithIngredient("egg", 2, "piece", recipe.IngredientCategoryOther).
		WithIngredient("lettuce", 100, "g", recipe.IngredientCategoryVegetable).
		Build()

	breakfast := testutils.NewMealPlanBuilder().
		WithDate(suite.start).
		WithMealType(mealplan.MealTypeBreakfast).
		WithRecipe(omelette.ID()).
		Build()
	lunch := testutils.NewMealPlanBuilder().
		WithDate(suite.start).
		WithMealType(mealplan.MealTypeLunch).
		WithRecipe(salad.ID()).
		Build()

	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{breakfast, lunch}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, omelette.ID()).Return(omelette, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, salad.ID()).Return(salad, nil)

	var persisted *shoppinglist.ShoppingList
	suite.listRepo.On("CreateWithItems", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*shoppinglist.ShoppingList)
		}).
		Return(nil)

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), dto)
	require.NotNil(suite.T(), persisted)

	// egg folds across the two recipes; butter and lettuce stay separate
	require.Len(suite.T(), dto.Items, 3)
	assert.Equal(suite.T(), "egg", dto.Items[0].IngredientName)
	assert.Equal(suite.T(), 5.0, dto.Items[0].TotalQuantity)
	assert.Equal(suite.T(), "butter", dto.Items[1].IngredientName)
	assert.Equal(suite.T(), "lettuce", dto.Items[2].IngredientName)

	for _, item := range dto.Items {
		assert.False(suite.T(), item.IsPurchased)
	}

	assert.Equal(suite.T(), "Week 11", dto.Name)
	assert.Equal(suite.T(), suite.start, dto.DateRangeStart)
	assert.Equal(suite.T(), suite.end, dto.DateRangeEnd)
	suite.listRepo.AssertNumberOfCalls(suite.T(), "CreateWithItems", 1)
}

func (suite *GenerateTestSuite) TestSharedRecipe_ResolvedOncePerRun() {
	stew := testutils.NewRecipeBuilder().
		WithName("Stew").
		WithIngredient("beef", 300, "g", recipe.IngredientCategoryMeat).
		Build()

	monday := testutils.NewMealPlanBuilder().WithDate(suite.start).WithMealType(mealplan.MealTypeDinner).WithRecipe(stew.ID()).Build()
	tuesday := testutils.NewMealPlanBuilder().WithDate(suite.start.AddDate(0, 0, 1)).WithMealType(mealplan.MealTypeDinner).WithRecipe(stew.ID()).Build()

	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{monday, tuesday}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, stew.ID()).Return(stew, nil).Once()
	suite.listRepo.On("CreateWithItems", mock.Anything, mock.Anything).Return(nil)

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dto.Items, 1)
	assert.Equal(suite.T(), 600.0, dto.Items[0].TotalQuantity)
	suite.recipeRepo.AssertNumberOfCalls(suite.T(), "FindByID", 1)
}

func (suite *GenerateTestSuite) TestMidDayBounds_TruncatedToWholeDays() {
	omelette := testutils.NewRecipeBuilder().
		WithName("Omelette").
		WithIngredient("egg", 3, "piece", recipe.IngredientCategoryOther).
		Build()
	plan := testutils.NewMealPlanBuilder().WithDate(suite.start).WithRecipe(omelette.ID()).Build()

	// Plans live at midnight UTC, so the lookup must see day bounds even
	// when the caller passes times within the day.
	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{plan}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, omelette.ID()).Return(omelette, nil)
	suite.listRepo.On("CreateWithItems", mock.Anything, mock.Anything).Return(nil)

	cmd := suite.command()
	cmd.StartDate = suite.start.Add(9*time.Hour + 30*time.Minute)
	cmd.EndDate = suite.end.Add(23 * time.Hour)

	dto, err := suite.service.GenerateFromMealPlans(context.Background(), cmd)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.start, dto.DateRangeStart)
	assert.Equal(suite.T(), suite.end, dto.DateRangeEnd)
	require.Len(suite.T(), dto.Items, 1)
	assert.Equal(suite.T(), 3.0, dto.Items[0].TotalQuantity)
}

func (suite *GenerateTestSuite) TestRepeatedRuns_ProduceEqualIndependentLists() {
	omelette := testutils.NewRecipeBuilder().
		WithName("Omelette").
		WithIngredient("egg", 3, "piece", recipe.IngredientCategoryOther).
		Build()
	plan := testutils.NewMealPlanBuilder().WithDate(suite.start).WithRecipe(omelette.ID()).Build()

	suite.mealPlanRepo.On("FindByDateRange", mock.Anything, suite.start, suite.end).
		Return([]*mealplan.MealPlan{plan}, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, omelette.ID()).Return(omelette, nil)
	suite.listRepo.On("CreateWithItems", mock.Anything, mock.Anything).Return(nil)

	first, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())
	require.NoError(suite.T(), err)
	second, err := suite.service.GenerateFromMealPlans(context.Background(), suite.command())
	require.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), first.ID, second.ID)
	require.Len(suite.T(), first.Items, 1)
	require.Len(suite.T(), second.Items, 1)
	assert.Equal(suite.T(), first.Items[0].IngredientName, second.Items[0].IngredientName)
	assert.Equal(suite.T(), first.Items[0].TotalQuantity, second.Items[0].TotalQuantity)
	suite.listRepo.AssertNumberOfCalls(suite.T(), "CreateWithItems", 2)
}

func TestGenerateTestSuite(t *testing.T) {
	suite.Run(t, new(GenerateTestSuite))
}
