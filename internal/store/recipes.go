package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
)

// recipeKey zero-pads ids so key order is id order.
func recipeKey(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func recipeSourceURLKeys(r *domain.Recipe) []string {
	if r.Deleted || r.SourceURL == "" {
		return nil
	}
	return []string{normalizeSourceURL(r.SourceURL)}
}

func normalizeSourceURL(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// CreateRecipe stores a new recipe and assigns its id.
func (s *BadgerStore) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := s.recipeSeq.Next()
	if err != nil {
		return wrapf(err, "allocate recipe id")
	}
	recipe.ID = int64(n) + 1

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	if err := s.recipes.Create(ctx, recipeKey(recipe.ID), recipe); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return wrapf(err, "create recipe")
	}

	s.logger.Debug("Recipe created", "recipe_id", recipe.ID, "ingredients", len(recipe.Ingredients))
	return nil
}

// GetRecipe returns a recipe, including soft-deleted ones.
func (s *BadgerStore) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	r, err := s.recipes.Get(ctx, recipeKey(id))
	if errors.Is(err, ErrNotFound) {
		return nil, RecipeNotFound(id)
	}
	if err != nil {
		return nil, wrapf(err, "get recipe %d", id)
	}
	return r, nil
}

// FindRecipeBySourceURL returns the live recipe imported from sourceURL.
func (s *BadgerStore) FindRecipeBySourceURL(ctx context.Context, sourceURL string) (*domain.Recipe, error) {
	r, err := s.recipes.GetByIndex(ctx, "source_url", sourceURL)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapf(err, "find recipe by source url")
	}
	return r, nil
}

// ListRecipes returns live recipes ordered by id.
func (s *BadgerStore) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for r, err := range s.recipes.List(ctx) {
		if err != nil {
			return nil, wrapf(err, "list recipes")
		}
		if r.IsLive() {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetRecipesByIDs returns the live recipes among ids in first-seen order.
// Missing and deleted ids are skipped.
func (s *BadgerStore) GetRecipesByIDs(ctx context.Context, ids []int64) ([]*domain.Recipe, error) {
	out := make([]*domain.Recipe, 0, len(ids))
	seen := make(map[int64]bool, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			r, err := s.recipes.load(txn, recipeKey(id))
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if r.IsLive() {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapf(err, "get recipes")
	}
	return out, nil
}

// DeleteRecipe marks a recipe deleted. Lists built from it are unchanged.
func (s *BadgerStore) DeleteRecipe(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		r, err := s.recipes.load(txn, recipeKey(id))
		if err != nil {
			return err
		}
		if r.Deleted {
			return ErrNotFound
		}
		r.Deleted = true
		r.Touch()
		return s.recipes.UpdateTxn(txn, recipeKey(id), r)
	})
	if errors.Is(err, ErrNotFound) {
		return RecipeNotFound(id)
	}
	if err != nil {
		return wrapf(err, "delete recipe %d", id)
	}

	s.logger.Debug("Recipe deleted", "recipe_id", id)
	return nil
}
