package shoppinglist

import (
	"github.com/platebook/v1/internal/domain/recipe"
)

// Key identifies a mergeable shopping list line. Equality is exact value
// equality: no case folding, no whitespace trimming, no unit conversion.
// Lines that agree on name and category but differ in unit stay separate;
// the engine never converts between units.
type Key struct {
	Name     string
	Unit     string
	Category recipe.IngredientCategory
}

// Aggregator folds ingredient lines into running totals per Key. It is
// request-scoped, single-threaded working state; the fold is commutative,
// so traversal order of the source meal plans does not affect the totals.
type Aggregator struct {
	totals map[Key]float64
	order  []Key
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		totals: make(map[Key]float64),
	}
}

// Add folds one ingredient line into the running totals. The source line is
// never mutated.
func (a *Aggregator) Add(line recipe.Ingredient) {
	key := Key{
		Name:     line.Name,
		Unit:     line.Unit,
		Category: line.Category,
	}

	if _, seen := a.totals[key]; !seen {
		a.order = append(a.order, key)
	}
	a.totals[key] += line.Quantity
}

// Len returns the number of distinct keys observed
func (a *Aggregator) Len() int {
	return len(a.totals)
}

// Items builds one shopping list item per distinct key. Items come out in
// first-seen key order; that order is incidental, not a contract.
func (a *Aggregator) Items() []Item {
	items := make([]Item, 0, len(a.order))
	for _, key := range a.order {
		items = append(items, Item{
			IngredientName: key.Name,
			TotalQuantity:  a.totals[key],
			Unit:           key.Unit,
			Category:       key.Category,
			IsPurchased:    false,
		})
	}
	return items
}
