package shoppinglist

import "errors"

// Domain errors for shopping list operations

var (
	ErrNameRequired         = errors.New("shopping list name is required")
	ErrInvalidDateRange     = errors.New("start date must be before or equal to end date")
	ErrItemNameRequired     = errors.New("shopping list item ingredient name is required")
	ErrItemUnitRequired     = errors.New("shopping list item unit is required")
	ErrItemQuantityNegative = errors.New("shopping list item quantity cannot be negative")
	ErrListNotFound         = errors.New("shopping list not found")
	ErrItemNotFound         = errors.New("shopping list item not found")
)
