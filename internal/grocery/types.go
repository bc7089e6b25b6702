// Package grocery consolidates recipe ingredient requirements into a
// deduplicated, unit-consistent and package-aware shopping list.
//
// The package is pure: it does no I/O, keeps no shared state, and every call
// works on values owned by the caller, so consolidations may run concurrently.
package grocery

import (
	"slices"

	"github.com/CyberCatD/youtube-to-list-app/internal/ingredient"
	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// Requirement is one ingredient line from one recipe.
type Requirement struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	RecipeID int64    `json:"recipe_id"`
}

// Recipe is a named, ordered list of requirements. The recipe's ID is the
// contributor recorded for each of its requirements.
type Recipe struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Ingredients []Requirement `json:"ingredients"`
}

// Requirements returns the recipe's ingredients stamped with its ID.
func (r Recipe) Requirements() []Requirement {
	reqs := make([]Requirement, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ing.RecipeID = r.ID
		reqs[i] = ing
	}
	return reqs
}

// LineItem is one row of a consolidated shopping list. Quantity and Unit are
// either both set or both empty.
type LineItem struct {
	Name               string     `json:"name"`
	Quantity           *float64   `json:"quantity,omitempty"`
	Unit               units.Unit `json:"unit,omitempty"`
	Category           string     `json:"category"`
	RecipeIDs          []int64    `json:"recipe_ids"`
	RetailPackage      string     `json:"retail_package,omitempty"`
	RetailPackageCount int        `json:"retail_package_count,omitempty"`
	ExactAmount        string     `json:"exact_amount,omitempty"`
}

// Key is the consolidation identity of the item.
func (li LineItem) Key() string {
	return ingredient.Key(li.Name)
}

// HasRecipe reports whether recipeID contributed to the item.
func (li LineItem) HasRecipe(recipeID int64) bool {
	return slices.Contains(li.RecipeIDs, recipeID)
}

// Clone returns a deep copy of the item.
func (li LineItem) Clone() LineItem {
	out := li
	out.RecipeIDs = slices.Clone(li.RecipeIDs)
	if li.Quantity != nil {
		q := *li.Quantity
		out.Quantity = &q
	}
	return out
}

// addRecipe records recipeID as a contributor once.
func (li *LineItem) addRecipe(recipeID int64) {
	if !li.HasRecipe(recipeID) {
		li.RecipeIDs = append(li.RecipeIDs, recipeID)
	}
}
