package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shoppinglist"
	"github.com/platebook/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// ShoppingListRepository implements the shopping list repository interface
// using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// CreateWithItems persists the list header and all items in one
// transaction. A failure on any row rolls the whole write back.
func (r *ShoppingListRepository) CreateWithItems(ctx context.Context, list *shoppinglist.ShoppingList) error {
	model := ShoppingListToModel(list)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	return nil
}

// Update rewrites the header and replaces the items
func (r *ShoppingListRepository) Update(ctx context.Context, list *shoppinglist.ShoppingList) error {
	model := ShoppingListToModel(list)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ShoppingListModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":             model.Name,
				"date_range_start": model.DateRangeStart,
				"date_range_end":   model.DateRangeEnd,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update shopping list: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shoppinglist.ErrListNotFound
		}

		if err := tx.Where("shopping_list_id = ?", model.ID).Delete(&ShoppingListItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear shopping list items: %w", err)
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return fmt.Errorf("failed to write shopping list items: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a list and its items
func (r *ShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", id).Delete(&ShoppingListItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping list items: %w", err)
		}

		result := tx.Delete(&ShoppingListModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete shopping list: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shoppinglist.ErrListNotFound
		}
		return nil
	})
}

// FindByID finds a list by ID with its ordered items
func (r *ShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shoppinglist.ShoppingList, error) {
	var model ShoppingListModel

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shoppinglist.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find shopping list: %w", err)
	}

	return ModelToShoppingList(&model), nil
}

// FindAll returns all lists with their items
func (r *ShoppingListRepository) FindAll(ctx context.Context) ([]*shoppinglist.ShoppingList, error) {
	var models []ShoppingListModel

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	lists := make([]*shoppinglist.ShoppingList, len(models))
	for i := range models {
		lists[i] = ModelToShoppingList(&models[i])
	}
	return lists, nil
}

// FindByDateRange returns lists whose date range overlaps [start, end]
func (r *ShoppingListRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*shoppinglist.ShoppingList, error) {
	var models []ShoppingListModel

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("date_range_start <= ? AND date_range_end >= ?", end, start).
		Order("date_range_start ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists by date range: %w", err)
	}

	lists := make([]*shoppinglist.ShoppingList, len(models))
	for i := range models {
		lists[i] = ModelToShoppingList(&models[i])
	}
	return lists, nil
}

// AddItem appends one item after the list's current last position
func (r *ShoppingListRepository) AddItem(ctx context.Context, listID uuid.UUID, item shoppinglist.Item) (*shoppinglist.Item, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ShoppingListModel{}).Where("id = ?", listID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shoppinglist.ErrListNotFound
		}

		var maxPos *int
		if err := tx.Model(&ShoppingListItemModel{}).
			Where("shopping_list_id = ?", listID).
			Select("MAX(position)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		position := 0
		if maxPos != nil {
			position = *maxPos + 1
		}

		model := ItemToModel(listID, item, position)
		return tx.Create(&model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping list item: %w", err)
	}
	return &item, nil
}

// UpdateItem rewrites one item in place, keeping its position
func (r *ShoppingListRepository) UpdateItem(ctx context.Context, item shoppinglist.Item) error {
	result := r.db.WithContext(ctx).Model(&ShoppingListItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"ingredient_name": item.IngredientName,
			"total_quantity":  item.TotalQuantity,
			"unit":            item.Unit,
			"category":        string(item.Category),
			"is_purchased":    item.IsPurchased,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update shopping list item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

// RemoveItem drops one item by ID
func (r *ShoppingListRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ShoppingListItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to remove shopping list item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

// MarkItemPurchased toggles the purchase status of one item
func (r *ShoppingListRepository) MarkItemPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error {
	result := r.db.WithContext(ctx).Model(&ShoppingListItemModel{}).
		Where("id = ?", itemID).
		Update("is_purchased", purchased)
	if result.Error != nil {
		return fmt.Errorf("failed to mark shopping list item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

// FindItemsByCategory returns a list's items in one ingredient category
func (r *ShoppingListRepository) FindItemsByCategory(ctx context.Context, listID uuid.UUID, category recipe.IngredientCategory) ([]shoppinglist.Item, error) {
	var models []ShoppingListItemModel

	err := r.db.WithContext(ctx).
		Where("shopping_list_id = ? AND category = ?", listID, string(category)).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}

	return modelsToItems(models), nil
}

// FindItemsByPurchaseStatus returns a list's items filtered by status
func (r *ShoppingListRepository) FindItemsByPurchaseStatus(ctx context.Context, listID uuid.UUID, purchased bool) ([]shoppinglist.Item, error) {
	var models []ShoppingListItemModel

	err := r.db.WithContext(ctx).
		Where("shopping_list_id = ? AND is_purchased = ?", listID, purchased).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items by purchase status: %w", err)
	}

	return modelsToItems(models), nil
}

func modelsToItems(models []ShoppingListItemModel) []shoppinglist.Item {
	items := make([]shoppinglist.Item, len(models))
	for i, model := range models {
		items[i] = ModelToItem(model)
	}
	return items
}
