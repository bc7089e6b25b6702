package grocery

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/CyberCatD/youtube-to-list-app/internal/ingredient"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// Consolidator folds recipe requirements into line items and prices them
// against a retail catalog. It holds no mutable state and is safe for
// concurrent use.
type Consolidator struct {
	catalog *retail.Catalog
	logger  *slog.Logger
}

// New creates a consolidator. A nil catalog uses the US catalog and a nil
// logger discards output.
func New(catalog *retail.Catalog, logger *slog.Logger) *Consolidator {
	if catalog == nil {
		catalog = retail.US()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Consolidator{catalog: catalog, logger: logger}
}

// Catalog returns the retail catalog used for package suggestions.
func (c *Consolidator) Catalog() *retail.Catalog {
	return c.catalog
}

// Consolidate builds a shopping list from recipes. Items keep the order in
// which their key was first seen. An empty recipe set yields an empty list.
func (c *Consolidator) Consolidate(recipes []Recipe) []LineItem {
	b := c.newBuilder(nil)
	for _, r := range recipes {
		for _, req := range r.Requirements() {
			b.fold(req)
		}
	}
	return b.finish()
}

// Add folds one more recipe into an existing list with the same merge rules
// as Consolidate. The input slice is not modified. Callers must not add a
// recipe that already contributed to items, or its amounts count twice.
func (c *Consolidator) Add(items []LineItem, recipe Recipe) []LineItem {
	b := c.newBuilder(items)
	for _, req := range recipe.Requirements() {
		b.fold(req)
	}
	return b.finish()
}

// Remove drops recipeID from every item's contributors and deletes items
// left with none. Merged quantities are not reduced. The input slice is not
// modified.
func (c *Consolidator) Remove(items []LineItem, recipeID int64) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		item = item.Clone()
		ids := item.RecipeIDs[:0]
		for _, id := range item.RecipeIDs {
			if id != recipeID {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}
		item.RecipeIDs = ids
		out = append(out, item)
	}
	return out
}

// Price recomputes the retail suggestion of an item from its current name,
// quantity and unit.
func (c *Consolidator) Price(item LineItem) LineItem {
	s := c.catalog.Round(item.Name, item.Quantity, item.Unit)
	item.RetailPackage = s.Package
	item.RetailPackageCount = s.Count
	item.ExactAmount = s.ExactAmount
	return item
}

// builder is the in-progress keyed item list of one consolidation call.
type builder struct {
	c     *Consolidator
	items []LineItem
	index map[string]int
}

func (c *Consolidator) newBuilder(seed []LineItem) *builder {
	b := &builder{
		c:     c,
		items: make([]LineItem, 0, len(seed)),
		index: make(map[string]int, len(seed)),
	}
	for _, item := range seed {
		key := item.Key()
		if _, dup := b.index[key]; !dup {
			b.index[key] = len(b.items)
		}
		b.items = append(b.items, item.Clone())
	}
	return b
}

// fold merges one requirement into the list.
func (b *builder) fold(req Requirement) {
	qty := finite(req.Quantity)
	unit := units.Normalize(req.Unit)
	if qty != nil && unit == units.None {
		unit = units.Each
	}

	cleaned := ingredient.Clean(req.Name, unit)
	key := ingredient.Key(cleaned)
	if key == "" {
		return
	}
	toTaste := ingredient.IsToTaste(qty, unit, req.Name)

	idx, seen := b.index[key]
	if !seen {
		item := LineItem{
			Name:      cleaned,
			Category:  ingredient.Categorize(req.Name),
			RecipeIDs: []int64{req.RecipeID},
		}
		if !toTaste {
			item.Quantity = qty
			item.Unit = unit
		}
		b.index[key] = len(b.items)
		b.items = append(b.items, item)
		return
	}

	item := &b.items[idx]
	item.addRecipe(req.RecipeID)
	if toTaste {
		return
	}

	if item.Quantity == nil {
		item.Quantity = qty
		item.Unit = unit
		return
	}

	var total float64
	if units.Combinable(item.Unit, unit) {
		total, item.Unit = Combine(*item.Quantity, item.Unit, *qty, unit, cleaned)
	} else {
		b.c.logger.LogAttrs(context.Background(), slog.LevelDebug, "Adding incompatible units",
			slog.String("ingredient", cleaned),
			slog.String("unit", string(item.Unit)),
			slog.String("other_unit", string(unit)),
		)
		total = *item.Quantity + *qty
	}
	item.Quantity = &total
}

// finish prices every item and returns the list.
func (b *builder) finish() []LineItem {
	for i := range b.items {
		b.items[i] = b.c.Price(b.items[i])
	}
	return b.items
}

// finite copies q, treating NaN and infinities as absent.
func finite(q *float64) *float64 {
	if q == nil || math.IsNaN(*q) || math.IsInf(*q, 0) {
		return nil
	}
	v := *q
	return &v
}
