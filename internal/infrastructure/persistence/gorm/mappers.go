package gorm

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/mealplan"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(rec *recipe.Recipe) *RecipeModel {
	lines := rec.Ingredients()
	ingredients := make([]IngredientModel, len(lines))
	for i, line := range lines {
		ingredients[i] = IngredientModel{
			ID:       line.ID,
			RecipeID: rec.ID(),
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Category: string(line.Category),
			Position: i,
		}
	}

	return &RecipeModel{
		ID:                  rec.ID(),
		Name:                rec.Name(),
		Description:         rec.Description(),
		CookingInstructions: rec.CookingInstructions(),
		Category:            string(rec.Category()),
		PrepTimeMinutes:     int(rec.PrepTime() / time.Minute),
		CreatedAt:           rec.CreatedAt(),
		UpdatedAt:           rec.UpdatedAt(),
		Ingredients:         ingredients,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	sort.Slice(model.Ingredients, func(i, j int) bool {
		return model.Ingredients[i].Position < model.Ingredients[j].Position
	})

	lines := make([]recipe.Ingredient, len(model.Ingredients))
	for i, ing := range model.Ingredients {
		lines[i] = recipe.Ingredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Category: recipe.IngredientCategory(ing.Category),
		}
	}

	return recipe.Rehydrate(
		model.ID,
		model.Name,
		model.Description,
		model.CookingInstructions,
		recipe.CategoryType(model.Category),
		lines,
		time.Duration(model.PrepTimeMinutes)*time.Minute,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// MealPlanToModel converts a domain meal plan to its GORM model
func MealPlanToModel(plan *mealplan.MealPlan) *MealPlanModel {
	ids := plan.RecipeIDs()
	refs := make([]MealPlanRecipeModel, len(ids))
	for i, id := range ids {
		refs[i] = MealPlanRecipeModel{
			MealPlanID: plan.ID(),
			RecipeID:   id,
			Position:   i,
		}
	}

	return &MealPlanModel{
		ID:         plan.ID(),
		Name:       plan.Name(),
		Date:       plan.Date(),
		MealType:   string(plan.MealType()),
		CreatedAt:  plan.CreatedAt(),
		UpdatedAt:  plan.UpdatedAt(),
		RecipeRefs: refs,
	}
}

// ModelToMealPlan converts a GORM model to a domain meal plan
func ModelToMealPlan(model *MealPlanModel) *mealplan.MealPlan {
	sort.Slice(model.RecipeRefs, func(i, j int) bool {
		return model.RecipeRefs[i].Position < model.RecipeRefs[j].Position
	})

	ids := make([]uuid.UUID, len(model.RecipeRefs))
	for i, ref := range model.RecipeRefs {
		ids[i] = ref.RecipeID
	}

	return mealplan.Rehydrate(
		model.ID,
		model.Name,
		model.Date,
		mealplan.MealType(model.MealType),
		ids,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ShoppingListToModel converts a domain shopping list to its GORM model
func ShoppingListToModel(list *shoppinglist.ShoppingList) *ShoppingListModel {
	items := list.Items()
	models := make([]ShoppingListItemModel, len(items))
	for i, item := range items {
		models[i] = ItemToModel(list.ID(), item, i)
	}

	return &ShoppingListModel{
		ID:             list.ID(),
		Name:           list.Name(),
		DateRangeStart: list.DateRangeStart(),
		DateRangeEnd:   list.DateRangeEnd(),
		CreatedAt:      list.CreatedAt(),
		UpdatedAt:      list.UpdatedAt(),
		Items:          models,
	}
}

// ItemToModel converts one shopping list item to its GORM model
func ItemToModel(listID uuid.UUID, item shoppinglist.Item, position int) ShoppingListItemModel {
	return ShoppingListItemModel{
		ID:             item.ID,
		ShoppingListID: listID,
		IngredientName: item.IngredientName,
		TotalQuantity:  item.TotalQuantity,
		Unit:           item.Unit,
		Category:       string(item.Category),
		IsPurchased:    item.IsPurchased,
		Position:       position,
	}
}

// ModelToShoppingList converts a GORM model to a domain shopping list
func ModelToShoppingList(model *ShoppingListModel) *shoppinglist.ShoppingList {
	sort.Slice(model.Items, func(i, j int) bool {
		return model.Items[i].Position < model.Items[j].Position
	})

	items := make([]shoppinglist.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = ModelToItem(item)
	}

	return shoppinglist.Rehydrate(
		model.ID,
		model.Name,
		model.DateRangeStart,
		model.DateRangeEnd,
		items,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ModelToItem converts one item model to its domain value
func ModelToItem(model ShoppingListItemModel) shoppinglist.Item {
	return shoppinglist.Item{
		ID:             model.ID,
		IngredientName: model.IngredientName,
		TotalQuantity:  model.TotalQuantity,
		Unit:           model.Unit,
		Category:       recipe.IngredientCategory(model.Category),
		IsPurchased:    model.IsPurchased,
	}
}
