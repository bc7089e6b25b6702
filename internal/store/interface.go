// Package store defines persistence for recipes and grocery lists and
// provides the Badger-backed implementation.
package store

import (
	"context"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
)

// Store defines the interface for all persistence operations.
// Implementations return ErrNotFound for missing entities.
type Store interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Recipes
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error // assigns recipe.ID
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	FindRecipeBySourceURL(ctx context.Context, sourceURL string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]*domain.Recipe, error)                  // live recipes by id
	GetRecipesByIDs(ctx context.Context, ids []int64) ([]*domain.Recipe, error) // skips missing and deleted, keeps order
	DeleteRecipe(ctx context.Context, id int64) error                           // soft delete

	// Grocery lists
	CreateGroceryList(ctx context.Context, list *domain.GroceryList) error
	GetGroceryList(ctx context.Context, id string) (*domain.GroceryList, error)
	ListGroceryLists(ctx context.Context) ([]*domain.GroceryList, error) // most recently updated first
	UpdateGroceryList(ctx context.Context, list *domain.GroceryList) error
	// UpdateGroceryListFunc loads a list, applies fn and saves the result as
	// one unit of work. Errors from fn are returned unchanged and nothing is
	// written.
	UpdateGroceryListFunc(ctx context.Context, id string, fn func(*domain.GroceryList) error) (*domain.GroceryList, error)
	DeleteGroceryList(ctx context.Context, id string) error
}
