package domain

import (
	"slices"
	"time"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
)

// DefaultGroceryListName names lists created without one.
const DefaultGroceryListName = "My Grocery List"

// GroceryList is a saved, consolidated shopping list.
type GroceryList struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	RecipeIDs []int64           `json:"recipe_ids"` // Recipes folded into the list, in order added
	Items     []GroceryListItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// GroceryListItem is a line item with its own identity and checked state.
type GroceryListItem struct {
	ID        string `json:"id"`
	IsChecked bool   `json:"is_checked"`
	grocery.LineItem
}

// Touch updates the UpdatedAt timestamp.
func (l *GroceryList) Touch() {
	l.UpdatedAt = time.Now()
}

// HasRecipe reports whether recipeID was folded into the list.
func (l *GroceryList) HasRecipe(recipeID int64) bool {
	return slices.Contains(l.RecipeIDs, recipeID)
}

// LineItems returns copies of the list's line items in list order.
func (l *GroceryList) LineItems() []grocery.LineItem {
	out := make([]grocery.LineItem, len(l.Items))
	for i, item := range l.Items {
		out[i] = item.LineItem.Clone()
	}
	return out
}

// Item returns the index of the item with the given id, or -1.
func (l *GroceryList) Item(itemID string) int {
	return slices.IndexFunc(l.Items, func(it GroceryListItem) bool { return it.ID == itemID })
}

// ItemByKey returns the index of the first item with the given consolidation
// key, or -1.
func (l *GroceryList) ItemByKey(key string) int {
	return slices.IndexFunc(l.Items, func(it GroceryListItem) bool { return it.Key() == key })
}

// Checked returns the number of checked items.
func (l *GroceryList) Checked() int {
	n := 0
	for _, it := range l.Items {
		if it.IsChecked {
			n++
		}
	}
	return n
}

// Extend replaces the list's items after an incremental add. The first
// len(l.Items) entries of lines are the existing items in order and keep their
// ids and checked state. The rest are new and get ids from newID.
func (l *GroceryList) Extend(lines []grocery.LineItem, newID func() (string, error)) error {
	items := make([]GroceryListItem, len(lines))
	for i, line := range lines {
		if i < len(l.Items) {
			items[i] = GroceryListItem{ID: l.Items[i].ID, IsChecked: l.Items[i].IsChecked, LineItem: line}
			continue
		}
		itemID, err := newID()
		if err != nil {
			return err
		}
		items[i] = GroceryListItem{ID: itemID, LineItem: line}
	}
	l.Items = items
	return nil
}

// Shrink replaces the list's items after recipeID was removed. lines holds,
// in order, the items that still have another contributor.
func (l *GroceryList) Shrink(recipeID int64, lines []grocery.LineItem) {
	items := make([]GroceryListItem, 0, len(lines))
	j := 0
	for _, it := range l.Items {
		if !slices.ContainsFunc(it.RecipeIDs, func(id int64) bool { return id != recipeID }) {
			continue
		}
		if j >= len(lines) {
			break
		}
		items = append(items, GroceryListItem{ID: it.ID, IsChecked: it.IsChecked, LineItem: lines[j]})
		j++
	}
	l.Items = items
	l.RecipeIDs = slices.DeleteFunc(l.RecipeIDs, func(id int64) bool { return id == recipeID })
}
