// Package shoppinglist contains the domain logic for consolidated shopping
// lists. A list is created once by a generation run over the meal plans in a
// date range; afterwards it is edited independently of its source data.
package shoppinglist

import (
	"time"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/domain/recipe"
	"github.com/platebook/v1/internal/domain/shared"
)

// Item is one consolidated shopping list line. One item exists per distinct
// (ingredient name, unit, category) key observed during a generation run.
type Item struct {
	ID             uuid.UUID
	IngredientName string
	TotalQuantity  float64
	Unit           string
	Category       recipe.IngredientCategory
	IsPurchased    bool
}

// Validate validates the item
func (i Item) Validate() error {
	if i.IngredientName == "" {
		return ErrItemNameRequired
	}
	if i.Unit == "" {
		return ErrItemUnitRequired
	}
	if i.TotalQuantity < 0 {
		return ErrItemQuantityNegative
	}
	return nil
}

// ShoppingList is the aggregate produced by a generation run. Item order
// carries no meaning; consumers sort client-side.
type ShoppingList struct {
	id uuid.UUID

	name           string
	dateRangeStart time.Time
	dateRangeEnd   time.Time

	items []Item

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewShoppingList creates a shopping list for an inclusive date range
func NewShoppingList(name string, start, end time.Time, items []Item) (*ShoppingList, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}

	now := time.Now()
	l := &ShoppingList{
		id:             uuid.New(),
		name:           name,
		dateRangeStart: start,
		dateRangeEnd:   end,
		items:          items,
		createdAt:      now,
		updatedAt:      now,
		events:         []shared.DomainEvent{},
	}

	l.addEvent(ShoppingListCreatedEvent{
		ShoppingListID: l.id,
		Name:           name,
		ItemCount:      len(items),
		CreatedAt:      now,
	})

	return l, nil
}

// Rehydrate reconstructs a shopping list from persisted state, for repository
// mappers only.
func Rehydrate(
	id uuid.UUID,
	name string,
	start, end time.Time,
	items []Item,
	createdAt, updatedAt time.Time,
) *ShoppingList {
	return &ShoppingList{
		id:             id,
		name:           name,
		dateRangeStart: start,
		dateRangeEnd:   end,
		items:          items,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		events:         []shared.DomainEvent{},
	}
}

// ID returns the shopping list's unique identifier
func (l *ShoppingList) ID() uuid.UUID {
	return l.id
}

// Name returns the shopping list's name
func (l *ShoppingList) Name() string {
	return l.name
}

// DateRangeStart returns the inclusive start of the source date range
func (l *ShoppingList) DateRangeStart() time.Time {
	return l.dateRangeStart
}

// DateRangeEnd returns the inclusive end of the source date range
func (l *ShoppingList) DateRangeEnd() time.Time {
	return l.dateRangeEnd
}

// Items returns the consolidated items
func (l *ShoppingList) Items() []Item {
	return l.items
}

// CreatedAt returns when the list was created
func (l *ShoppingList) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns when the list was last updated
func (l *ShoppingList) UpdatedAt() time.Time {
	return l.updatedAt
}

// Rename updates the list name
func (l *ShoppingList) Rename(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	l.name = name
	l.updatedAt = time.Now()
	return nil
}

// ReplaceItems swaps the full item set, validating each item
func (l *ShoppingList) ReplaceItems(items []Item) error {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}

	l.items = items
	l.updatedAt = time.Now()
	return nil
}

// addEvent adds a domain event to be dispatched
func (l *ShoppingList) addEvent(event shared.DomainEvent) {
	l.events = append(l.events, event)
}

// Events returns and clears pending domain events
func (l *ShoppingList) Events() []shared.DomainEvent {
	events := l.events
	l.events = []shared.DomainEvent{}
	return events
}
