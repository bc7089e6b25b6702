package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
)

// recipeColumns must match the scan order in scanRecipe.
const recipeColumns = `id, name, source_url, deleted, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var (
		r                    domain.Recipe
		createdAt, updatedAt string
	)
	if err := scanner.Scan(&r.ID, &r.Name, &r.SourceURL, &r.Deleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func sourceKey(r *domain.Recipe) sql.NullString {
	if r.SourceURL == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.ToLower(strings.TrimSpace(r.SourceURL)), Valid: true}
}

// CreateRecipe inserts a recipe with its ingredients and assigns its id.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (name, source_url, source_key, deleted, created_at, updated_at)
			VALUES (?, ?, ?, 0, ?, ?)`,
			recipe.Name,
			recipe.SourceURL,
			sourceKey(recipe),
			formatTime(recipe.CreatedAt),
			formatTime(recipe.UpdatedAt),
		)
		if err != nil {
			return err
		}
		if recipe.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		for i, ing := range recipe.Ingredients {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, position, name, quantity, unit)
				VALUES (?, ?, ?, ?, ?)`,
				recipe.ID, i, ing.Name, nullFloat(ing.Quantity), ing.Unit,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return wrapf(err, "create recipe")
	}

	s.logger.Debug("Recipe created", "recipe_id", recipe.ID, "ingredients", len(recipe.Ingredients))
	return nil
}

// GetRecipe returns a recipe, including soft-deleted ones.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	r, err := scanRecipe(s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.RecipeNotFound(id)
	}
	if err != nil {
		return nil, wrapf(err, "get recipe %d", id)
	}
	if err := s.loadIngredients(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FindRecipeBySourceURL returns the live recipe imported from sourceURL.
func (s *Store) FindRecipeBySourceURL(ctx context.Context, sourceURL string) (*domain.Recipe, error) {
	key := sourceKey(&domain.Recipe{SourceURL: sourceURL})
	r, err := scanRecipe(s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE source_key = ? AND deleted = 0`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapf(err, "find recipe by source url")
	}
	if err := s.loadIngredients(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns live recipes ordered by id.
func (s *Store) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE deleted = 0 ORDER BY id ASC`)
	if err != nil {
		return nil, wrapf(err, "list recipes")
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, wrapf(err, "scan recipe")
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf(err, "list recipes")
	}
	rows.Close()

	for _, r := range recipes {
		if err := s.loadIngredients(ctx, r); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// GetRecipesByIDs returns the live recipes among ids in first-seen order.
// Missing and deleted ids are skipped.
func (s *Store) GetRecipesByIDs(ctx context.Context, ids []int64) ([]*domain.Recipe, error) {
	out := make([]*domain.Recipe, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		r, err := s.GetRecipe(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if r.IsLive() {
			out = append(out, r)
		}
	}
	return out, nil
}

// DeleteRecipe marks a recipe deleted and frees its source URL.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET deleted = 1, source_key = NULL, updated_at = ? WHERE id = ? AND deleted = 0`,
		formatTime(time.Now()), id)
	if err != nil {
		return wrapf(err, "delete recipe %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapf(err, "delete recipe %d", id)
	}
	if n == 0 {
		return store.RecipeNotFound(id)
	}

	s.logger.Debug("Recipe deleted", "recipe_id", id)
	return nil
}

func (s *Store) loadIngredients(ctx context.Context, r *domain.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity, unit FROM recipe_ingredients
		WHERE recipe_id = ? ORDER BY position ASC`, r.ID)
	if err != nil {
		return wrapf(err, "load ingredients of recipe %d", r.ID)
	}
	defer rows.Close()

	r.Ingredients = []domain.RecipeIngredient{}
	for rows.Next() {
		var (
			ing domain.RecipeIngredient
			qty sql.NullFloat64
		)
		if err := rows.Scan(&ing.Name, &qty, &ing.Unit); err != nil {
			return wrapf(err, "scan ingredient")
		}
		ing.Quantity = floatPtr(qty)
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return wrapf(err, "load ingredients of recipe %d", r.ID)
	}
	return nil
}
