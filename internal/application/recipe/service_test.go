package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/ports/inbound"
	apperrors "github.com/platebook/v1/pkg/errors"
	"github.com/platebook/v1/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RecipeServiceTestSuite struct {
	suite.Suite

	recipeRepo *testutils.MockRecipeRepository
	cacheRepo  *testutils.MockCacheRepository
	service    inbound.RecipeService
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.recipeRepo = new(testutils.MockRecipeRepository)
	suite.cacheRepo = new(testutils.MockCacheRepository)
	suite.service = NewRecipeService(suite.recipeRepo, suite.cacheRepo, zap.NewNop())
}

func (suite *RecipeServiceTestSuite) cacheKeyFor(id uuid.UUID) string {
	return "recipe:" + id.String()
}

func (suite *RecipeServiceTestSuite) TestCreateRecipe_PersistsAndCaches() {
	suite.recipeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute).Return(nil)

	dto, err := suite.service.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
		Name:            "Omelette",
		Description:     "Fast breakfast",
		PrepTimeMinutes: 10,
		Ingredients: []inbound.CreateIngredientCommand{
			{Name: "egg", Quantity: 3, Unit: "piece", Category: recipe.IngredientCategoryOther},
		},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Omelette", dto.Name)
	assert.Equal(suite.T(), 10, dto.PrepTimeMinutes)
	require.Len(suite.T(), dto.Ingredients, 1)
	assert.NotEqual(suite.T(), uuid.Nil, dto.Ingredients[0].ID)
	suite.cacheRepo.AssertNumberOfCalls(suite.T(), "Set", 1)
}

func (suite *RecipeServiceTestSuite) TestCreateRecipe_InvalidNameRejected() {
	dto, err := suite.service.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{Name: ""})

	assert.Nil(suite.T(), dto)
	var appErr *apperrors.AppError
	require.True(suite.T(), errors.As(err, &appErr))
	assert.Equal(suite.T(), apperrors.CodeValidationFailed, appErr.Code)
	suite.recipeRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *RecipeServiceTestSuite) TestGetRecipeByID_CacheHitSkipsRepository() {
	cached := inbound.RecipeDTO{ID: uuid.New(), Name: "Cached Stew"}
	data, err := json.Marshal(cached)
	require.NoError(suite.T(), err)

	suite.cacheRepo.On("Get", mock.Anything, suite.cacheKeyFor(cached.ID)).Return(data, nil)

	dto, err := suite.service.GetRecipeByID(context.Background(), cached.ID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Cached Stew", dto.Name)
	suite.recipeRepo.AssertNotCalled(suite.T(), "FindByID", mock.Anything, mock.Anything)
}

func (suite *RecipeServiceTestSuite) TestGetRecipeByID_CacheMissPopulatesCache() {
	rec := testutils.NewRecipeBuilder().WithName("Miss").Build()

	suite.cacheRepo.On("Get", mock.Anything, suite.cacheKeyFor(rec.ID())).Return(nil, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.cacheRepo.On("Set", mock.Anything, suite.cacheKeyFor(rec.ID()), mock.Anything, 15*time.Minute).Return(nil)

	dto, err := suite.service.GetRecipeByID(context.Background(), rec.ID())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Miss", dto.Name)
	suite.cacheRepo.AssertNumberOfCalls(suite.T(), "Set", 1)
}

func (suite *RecipeServiceTestSuite) TestGetRecipeByID_CacheFailureFallsThrough() {
	rec := testutils.NewRecipeBuilder().Build()

	suite.cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis down"))

	dto, err := suite.service.GetRecipeByID(context.Background(), rec.ID())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), rec.ID(), dto.ID)
}

func (suite *RecipeServiceTestSuite) TestUpdateRecipe_InvalidatesThenRecaches() {
	rec := testutils.NewRecipeBuilder().WithName("Before").Build()

	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.recipeRepo.On("Update", mock.Anything, rec).Return(nil)
	suite.cacheRepo.On("Delete", mock.Anything, suite.cacheKeyFor(rec.ID())).Return(nil)
	suite.cacheRepo.On("Set", mock.Anything, suite.cacheKeyFor(rec.ID()), mock.Anything, 15*time.Minute).Return(nil)

	newName := "After"
	dto, err := suite.service.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
		RecipeID: rec.ID(),
		Name:     &newName,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "After", dto.Name)
	suite.cacheRepo.AssertNumberOfCalls(suite.T(), "Delete", 1)
	suite.cacheRepo.AssertNumberOfCalls(suite.T(), "Set", 1)
}

func (suite *RecipeServiceTestSuite) TestUpdateRecipe_ReplacesIngredientLines() {
	rec := testutils.NewRecipeBuilder().
		WithIngredient("egg", 2, "piece", recipe.IngredientCategoryOther).
		Build()

	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.recipeRepo.On("Update", mock.Anything, rec).Return(nil)
	suite.cacheRepo.On("Delete", mock.Anything, mock.Anything).Return(nil)
	suite.cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dto, err := suite.service.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
		RecipeID: rec.ID(),
		Ingredients: []inbound.CreateIngredientCommand{
			{Name: "tofu", Quantity: 200, Unit: "g", Category: recipe.IngredientCategoryOther},
			{Name: "soy sauce", Quantity: 15, Unit: "ml", Category: recipe.IngredientCategoryCondiment},
		},
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dto.Ingredients, 2)
	assert.Equal(suite.T(), "tofu", dto.Ingredients[0].Name)
	assert.Equal(suite.T(), "soy sauce", dto.Ingredients[1].Name)
}

func (suite *RecipeServiceTestSuite) TestDeleteRecipe_InvalidatesCache() {
	rec := testutils.NewRecipeBuilder().Build()

	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.recipeRepo.On("Delete", mock.Anything, rec.ID()).Return(nil)
	suite.cacheRepo.On("Delete", mock.Anything, suite.cacheKeyFor(rec.ID())).Return(nil)

	err := suite.service.DeleteRecipe(context.Background(), rec.ID())

	require.NoError(suite.T(), err)
	suite.cacheRepo.AssertNumberOfCalls(suite.T(), "Delete", 1)
}

func (suite *RecipeServiceTestSuite) TestDeleteRecipe_UnknownRecipe() {
	missing := uuid.New()
	suite.recipeRepo.On("FindByID", mock.Anything, missing).Return(nil, recipe.ErrRecipeNotFound)

	err := suite.service.DeleteRecipe(context.Background(), missing)

	var appErr *apperrors.AppError
	require.True(suite.T(), errors.As(err, &appErr))
	assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, appErr.Code)
	suite.recipeRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *RecipeServiceTestSuite) TestListRecipes_ClampsPagination() {
	suite.recipeRepo.On("FindAll", mock.Anything, 0, 20).Return([]*recipe.Recipe{}, 45, nil)

	list, err := suite.service.ListRecipes(context.Background(), inbound.PaginationParams{Page: 0, PageSize: 500})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, list.Page)
	assert.Equal(suite.T(), 20, list.PageSize)
	assert.Equal(suite.T(), 45, list.Total)
	assert.Equal(suite.T(), 3, list.TotalPages)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
