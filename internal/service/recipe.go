// Package service holds the application logic for recipes and grocery lists.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/validation"
)

// RecipeService manages saved recipes.
type RecipeService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, logger *slog.Logger) *RecipeService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RecipeService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// IngredientRequest is one ingredient line of a recipe or preview request.
type IngredientRequest struct {
	Name     string   `json:"name" validate:"notblank,max=200"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,finite,gte=0"`
	Unit     string   `json:"unit,omitempty" validate:"max=50"`
}

// CreateRecipeRequest contains fields for saving a recipe.
type CreateRecipeRequest struct {
	Name        string              `json:"name" validate:"notblank,max=200"`
	SourceURL   string              `json:"source_url,omitempty" validate:"omitempty,url"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"min=1,max=200,dive"`
}

// CreateRecipe validates and saves a recipe. Only one live recipe may come
// from a given source URL.
func (s *RecipeService) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	sourceURL := strings.TrimSpace(req.SourceURL)
	if sourceURL != "" {
		existing, err := s.store.FindRecipeBySourceURL(ctx, sourceURL)
		if err == nil {
			return nil, domainerrors.Conflictf("recipe %d was already imported from %s", existing.ID, sourceURL)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	recipe := &domain.Recipe{
		Name:        strings.TrimSpace(req.Name),
		SourceURL:   sourceURL,
		Ingredients: toRecipeIngredients(req.Ingredients),
	}
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("a recipe from %s already exists", sourceURL)
		}
		return nil, err
	}

	s.logger.Info("recipe created", "recipe_id", recipe.ID, "name", recipe.Name, "ingredients", len(recipe.Ingredients))
	return recipe, nil
}

// GetRecipe returns a live recipe.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsLive() {
		return nil, store.RecipeNotFound(id)
	}
	return r, nil
}

// ListRecipes returns all live recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx)
}

// DeleteRecipe soft deletes a recipe. Grocery lists that used it keep their
// items.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.logger.Info("recipe deleted", "recipe_id", id)
	return nil
}

func toRecipeIngredients(reqs []IngredientRequest) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, len(reqs))
	for i, r := range reqs {
		out[i] = domain.RecipeIngredient{
			Name:     strings.TrimSpace(r.Name),
			Quantity: r.Quantity,
			Unit:     strings.TrimSpace(r.Unit),
		}
	}
	return out
}
