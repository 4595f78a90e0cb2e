package mealplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
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

type MealPlanServiceTestSuite struct {
	suite.Suite

	mealPlanRepo *testutils.MockMealPlanRepository
	recipeRepo   *testutils.MockRecipeRepository
	service      inbound.MealPlanService

	date time.Time
}

func (suite *MealPlanServiceTestSuite) SetupTest() {
	suite.mealPlanRepo = new(testutils.MockMealPlanRepository)
	suite.recipeRepo = new(testutils.MockRecipeRepository)
	suite.service = NewMealPlanService(suite.mealPlanRepo, suite.recipeRepo, zap.NewNop())
	suite.date = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *MealPlanServiceTestSuite) assertCode(err error, code apperrors.ErrorCode) {
	var appErr *apperrors.AppError
	require.True(suite.T(), errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(suite.T(), code, appErr.Code)
}

func (suite *MealPlanServiceTestSuite) TestCreateMealPlan_FreeSlot() {
	rec := testutils.NewRecipeBuilder().Build()

	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeDinner).
		Return(nil, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)
	suite.mealPlanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	dto, err := suite.service.CreateMealPlan(context.Background(), inbound.CreateMealPlanCommand{
		Name:      "Monday dinner",
		Date:      suite.date,
		MealType:  mealplan.MealTypeDinner,
		RecipeIDs: []uuid.UUID{rec.ID()},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Monday dinner", dto.Name)
	assert.Equal(suite.T(), []uuid.UUID{rec.ID()}, dto.RecipeIDs)
	suite.mealPlanRepo.AssertNumberOfCalls(suite.T(), "Create", 1)
}

func (suite *MealPlanServiceTestSuite) TestCreateMealPlan_TruncatesTimeOfDay() {
	late := suite.date.Add(18*time.Hour + 45*time.Minute)

	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeLunch).
		Return(nil, nil)
	suite.mealPlanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	dto, err := suite.service.CreateMealPlan(context.Background(), inbound.CreateMealPlanCommand{
		Name:     "Lunch",
		Date:     late,
		MealType: mealplan.MealTypeLunch,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.date, dto.Date)
}

func (suite *MealPlanServiceTestSuite) TestCreateMealPlan_OccupiedSlotConflicts() {
	occupant := testutils.NewMealPlanBuilder().
		WithDate(suite.date).
		WithMealType(mealplan.MealTypeDinner).
		Build()

	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeDinner).
		Return(occupant, nil)

	dto, err := suite.service.CreateMealPlan(context.Background(), inbound.CreateMealPlanCommand{
		Name:     "Second dinner",
		Date:     suite.date,
		MealType: mealplan.MealTypeDinner,
	})

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeMealSlotAlreadyPlanned)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MealPlanServiceTestSuite) TestCreateMealPlan_UnknownRecipeRejected() {
	missing := uuid.New()

	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeBreakfast).
		Return(nil, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, missing).
		Return(nil, recipe.ErrRecipeNotFound)

	dto, err := suite.service.CreateMealPlan(context.Background(), inbound.CreateMealPlanCommand{
		Name:      "Breakfast",
		Date:      suite.date,
		MealType:  mealplan.MealTypeBreakfast,
		RecipeIDs: []uuid.UUID{missing},
	})

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeRecipeNotFound)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MealPlanServiceTestSuite) TestUpdateMealPlan_RescheduleToOwnSlot() {
	plan := testutils.NewMealPlanBuilder().
		WithDate(suite.date).
		WithMealType(mealplan.MealTypeDinner).
		Build()

	suite.mealPlanRepo.On("FindByID", mock.Anything, plan.ID()).Return(plan, nil)
	// slot lookup finds the plan itself, which is not a conflict
	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeDinner).
		Return(plan, nil)
	suite.mealPlanRepo.On("Update", mock.Anything, plan).Return(nil)

	newName := "Renamed"
	dto, err := suite.service.UpdateMealPlan(context.Background(), inbound.UpdateMealPlanCommand{
		MealPlanID: plan.ID(),
		Name:       &newName,
		Date:       &suite.date,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed", dto.Name)
}

func (suite *MealPlanServiceTestSuite) TestUpdateMealPlan_RescheduleIntoOccupiedSlot() {
	plan := testutils.NewMealPlanBuilder().
		WithDate(suite.date).
		WithMealType(mealplan.MealTypeLunch).
		Build()
	occupant := testutils.NewMealPlanBuilder().
		WithDate(suite.date).
		WithMealType(mealplan.MealTypeDinner).
		Build()

	suite.mealPlanRepo.On("FindByID", mock.Anything, plan.ID()).Return(plan, nil)
	suite.mealPlanRepo.On("FindByDateAndType", mock.Anything, suite.date, mealplan.MealTypeDinner).
		Return(occupant, nil)

	dinner := mealplan.MealTypeDinner
	dto, err := suite.service.UpdateMealPlan(context.Background(), inbound.UpdateMealPlanCommand{
		MealPlanID: plan.ID(),
		MealType:   &dinner,
	})

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeMealSlotAlreadyPlanned)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *MealPlanServiceTestSuite) TestAssignRecipe_DuplicateRejected() {
	rec := testutils.NewRecipeBuilder().Build()
	plan := testutils.NewMealPlanBuilder().WithRecipe(rec.ID()).Build()

	suite.mealPlanRepo.On("FindByID", mock.Anything, plan.ID()).Return(plan, nil)
	suite.recipeRepo.On("FindByID", mock.Anything, rec.ID()).Return(rec, nil)

	dto, err := suite.service.AssignRecipe(context.Background(), plan.ID(), rec.ID())

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeValidationFailed)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *MealPlanServiceTestSuite) TestRemoveRecipe_NotAssigned() {
	plan := testutils.NewMealPlanBuilder().Build()

	suite.mealPlanRepo.On("FindByID", mock.Anything, plan.ID()).Return(plan, nil)

	dto, err := suite.service.RemoveRecipe(context.Background(), plan.ID(), uuid.New())

	assert.Nil(suite.T(), dto)
	suite.assertCode(err, apperrors.CodeValidationFailed)
}

func (suite *MealPlanServiceTestSuite) TestListMealPlans_InvertedRange() {
	dtos, err := suite.service.ListMealPlans(context.Background(), suite.date.AddDate(0, 0, 7), suite.date)

	assert.Nil(suite.T(), dtos)
	suite.assertCode(err, apperrors.CodeInvalidDateRange)
	suite.mealPlanRepo.AssertNotCalled(suite.T(), "FindByDateRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestMealPlanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MealPlanServiceTestSuite))
}
