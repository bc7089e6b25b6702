// Package domain holds the persisted entities of the grocery list service.
package domain

import (
	"time"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
)

// Recipe is a saved recipe. Deleting a recipe only marks it, so grocery lists
// built from it keep a valid contributor id.
type Recipe struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	SourceURL   string             `json:"source_url,omitempty"` // Video or page the recipe came from
	Ingredients []RecipeIngredient `json:"ingredients"`
	Deleted     bool               `json:"deleted,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecipeIngredient is one ingredient line as written in the recipe.
type RecipeIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// IsLive reports whether the recipe can contribute to a grocery list.
func (r *Recipe) IsLive() bool {
	return r != nil && !r.Deleted
}

// Consolidation converts the recipe to the consolidator's input.
func (r *Recipe) Consolidation() grocery.Recipe {
	reqs := make([]grocery.Requirement, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		reqs[i] = grocery.Requirement{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			RecipeID: r.ID,
		}
	}
	return grocery.Recipe{ID: r.ID, Name: r.Name, Ingredients: reqs}
}
