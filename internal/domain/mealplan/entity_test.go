package mealplan

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MealPlanTestSuite provides a test suite for the MealPlan entity
type MealPlanTestSuite struct {
	suite.Suite
}

func (suite *MealPlanTestSuite) TestMealPlanCreation() {
	suite.Run("ValidPlan_TruncatesDateToDay", func() {
		date := time.Date(2025, 3, 10, 18, 45, 12, 0, time.UTC)

		plan, err := NewMealPlan("Monday dinner", date, MealTypeDinner)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), plan.Date())
		assert.Equal(suite.T(), MealTypeDinner, plan.MealType())
		assert.Empty(suite.T(), plan.RecipeIDs())

		events := plan.Events()
		require.Len(suite.T(), events, 1)
		_, ok := events[0].(MealPlanCreatedEvent)
		assert.True(suite.T(), ok)
	})

	suite.Run("EmptyName_ReturnsError", func() {
		_, err := NewMealPlan("", time.Now(), MealTypeLunch)
		assert.ErrorIs(suite.T(), err, ErrNameRequired)
	})

	suite.Run("ZeroDate_ReturnsError", func() {
		_, err := NewMealPlan("Lunch", time.Time{}, MealTypeLunch)
		assert.ErrorIs(suite.T(), err, ErrDateRequired)
	})

	suite.Run("UnknownMealType_ReturnsError", func() {
		_, err := NewMealPlan("Snack", time.Now(), MealType("SNACK"))
		assert.ErrorIs(suite.T(), err, ErrInvalidMealType)
	})
}

func (suite *MealPlanTestSuite) TestRecipeAssignment() {
	suite.Run("AssignRecipe_AppendsInOrder", func() {
		plan, err := NewMealPlan("Dinner", time.Now(), MealTypeDinner)
		require.NoError(suite.T(), err)

		first := uuid.New()
		second := uuid.New()
		require.NoError(suite.T(), plan.AssignRecipe(first))
		require.NoError(suite.T(), plan.AssignRecipe(second))

		assert.Equal(suite.T(), []uuid.UUID{first, second}, plan.RecipeIDs())
	})

	suite.Run("AssignRecipe_RejectsDuplicate", func() {
		plan, err := NewMealPlan("Dinner", time.Now(), MealTypeDinner)
		require.NoError(suite.T(), err)

		recipeID := uuid.New()
		require.NoError(suite.T(), plan.AssignRecipe(recipeID))
		assert.ErrorIs(suite.T(), plan.AssignRecipe(recipeID), ErrRecipeAlreadyAssigned)
	})

	suite.Run("AssignRecipe_RejectsNilReference", func() {
		plan, err := NewMealPlan("Dinner", time.Now(), MealTypeDinner)
		require.NoError(suite.T(), err)

		assert.ErrorIs(suite.T(), plan.AssignRecipe(uuid.Nil), ErrInvalidRecipeRef)
	})

	suite.Run("RemoveRecipe_DropsReference", func() {
		plan, err := NewMealPlan("Dinner", time.Now(), MealTypeDinner)
		require.NoError(suite.T(), err)

		recipeID := uuid.New()
		require.NoError(suite.T(), plan.AssignRecipe(recipeID))
		require.NoError(suite.T(), plan.RemoveRecipe(recipeID))
		assert.Empty(suite.T(), plan.RecipeIDs())

		assert.ErrorIs(suite.T(), plan.RemoveRecipe(recipeID), ErrRecipeNotAssigned)
	})
}

func (suite *MealPlanTestSuite) TestMealTypeOrdering() {
	assert.True(suite.T(), MealTypeBreakfast.Less(MealTypeLunch))
	assert.True(suite.T(), MealTypeLunch.Less(MealTypeDinner))
	assert.False(suite.T(), MealTypeDinner.Less(MealTypeBreakfast))
}

func (suite *MealPlanTestSuite) TestReschedule() {
	plan, err := NewMealPlan("Dinner", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), MealTypeDinner)
	require.NoError(suite.T(), err)

	target := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	require.NoError(suite.T(), plan.Reschedule(target, MealTypeLunch))

	assert.Equal(suite.T(), time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), plan.Date())
	assert.Equal(suite.T(), MealTypeLunch, plan.MealType())

	assert.ErrorIs(suite.T(), plan.Reschedule(time.Time{}, MealTypeLunch), ErrDateRequired)
	assert.ErrorIs(suite.T(), plan.Reschedule(target, MealType("BRUNCH")), ErrInvalidMealType)
}

func TestMealPlanTestSuite(t *testing.T) {
	suite.Run(t, new(MealPlanTestSuite))
}
