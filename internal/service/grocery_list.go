package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/id"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/units"
	"github.com/CyberCatD/youtube-to-list-app/internal/validation"
)

// GroceryListService builds and maintains consolidated grocery lists.
type GroceryListService struct {
	store        store.Store
	consolidator *grocery.Consolidator
	logger       *slog.Logger
	validator    *validation.Validator
}

// NewGroceryListService creates a new grocery list service.
func NewGroceryListService(store store.Store, consolidator *grocery.Consolidator, logger *slog.Logger) *GroceryListService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GroceryListService{
		store:        store,
		consolidator: consolidator,
		logger:       logger,
		validator:    validation.New(),
	}
}

// Market returns the retail market used for package suggestions.
func (s *GroceryListService) Market() string {
	return s.consolidator.Catalog().Market()
}

// Packages returns the retail catalog entries in lookup order.
func (s *GroceryListService) Packages() []retail.Entry {
	return s.consolidator.Catalog().Entries()
}

// CreateGroceryListRequest contains fields for building a list from saved
// recipes.
type CreateGroceryListRequest struct {
	Name      string  `json:"name,omitempty" validate:"max=200"`
	RecipeIDs []int64 `json:"recipe_ids" validate:"min=1,max=100,dive,gt=0"`
}

// CreateGroceryList consolidates the named recipes into a new list. Missing
// and deleted recipes are skipped. It fails if none are left.
func (s *GroceryListService) CreateGroceryList(ctx context.Context, req CreateGroceryListRequest) (*domain.GroceryList, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	recipes, err := s.store.GetRecipesByIDs(ctx, req.RecipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, domainerrors.InvalidArgument("none of the requested recipes exist")
	}

	inputs := make([]grocery.Recipe, len(recipes))
	recipeIDs := make([]int64, len(recipes))
	for i, r := range recipes {
		inputs[i] = r.Consolidation()
		recipeIDs[i] = r.ID
	}

	listID, err := id.GroceryList()
	if err != nil {
		return nil, fmt.Errorf("generate grocery list ID: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = domain.DefaultGroceryListName
	}

	list := &domain.GroceryList{
		ID:        listID,
		Name:      name,
		RecipeIDs: recipeIDs,
	}
	if err := list.Extend(s.consolidator.Consolidate(inputs), id.Item); err != nil {
		return nil, fmt.Errorf("generate item IDs: %w", err)
	}

	if err := s.store.CreateGroceryList(ctx, list); err != nil {
		return nil, fmt.Errorf("create grocery list: %w", err)
	}

	s.logger.Info("grocery list created",
		"list_id", list.ID,
		"recipes", len(list.RecipeIDs),
		"items", len(list.Items),
	)
	return list, nil
}

// GetGroceryList returns a list by ID.
func (s *GroceryListService) GetGroceryList(ctx context.Context, listID string) (*domain.GroceryList, error) {
	return s.store.GetGroceryList(ctx, listID)
}

// ListGroceryLists returns all lists, most recently updated first.
func (s *GroceryListService) ListGroceryLists(ctx context.Context) ([]*domain.GroceryList, error) {
	return s.store.ListGroceryLists(ctx)
}

// DeleteGroceryList removes a list.
func (s *GroceryListService) DeleteGroceryList(ctx context.Context, listID string) error {
	if err := s.store.DeleteGroceryList(ctx, listID); err != nil {
		return err
	}
	s.logger.Info("grocery list deleted", "list_id", listID)
	return nil
}

// errUnchanged aborts a list update that would not change anything.
var errUnchanged = errors.New("grocery list unchanged")

// AddRecipe folds a recipe into an existing list. Existing items keep their
// IDs and checked state. Adding a recipe that is already on the list changes
// nothing.
func (s *GroceryListService) AddRecipe(ctx context.Context, listID string, recipeID int64) (*domain.GroceryList, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsLive() {
		return nil, store.RecipeNotFound(recipeID)
	}

	var current *domain.GroceryList
	list, err := s.store.UpdateGroceryListFunc(ctx, listID, func(list *domain.GroceryList) error {
		if list.HasRecipe(recipeID) {
			current = list
			return errUnchanged
		}

		lines := s.consolidator.Add(list.LineItems(), recipe.Consolidation())
		if err := list.Extend(lines, id.Item); err != nil {
			return fmt.Errorf("generate item IDs: %w", err)
		}
		list.RecipeIDs = append(list.RecipeIDs, recipeID)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		s.logger.Debug("recipe already on grocery list", "list_id", listID, "recipe_id", recipeID)
		return current, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe added to grocery list", "list_id", listID, "recipe_id", recipeID, "items", len(list.Items))
	return list, nil
}

// RemoveRecipe drops a recipe from a list. Items only that recipe needed are
// removed. Merged quantities of shared items are left as they are.
func (s *GroceryListService) RemoveRecipe(ctx context.Context, listID string, recipeID int64) (*domain.GroceryList, error) {
	list, err := s.store.UpdateGroceryListFunc(ctx, listID, func(list *domain.GroceryList) error {
		if !list.HasRecipe(recipeID) {
			return domainerrors.NotFoundf("recipe %d is not on grocery list %s", recipeID, listID)
		}
		list.Shrink(recipeID, s.consolidator.Remove(list.LineItems(), recipeID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe removed from grocery list", "list_id", listID, "recipe_id", recipeID, "items", len(list.Items))
	return list, nil
}

// ToggleItem flips the checked state of an item.
func (s *GroceryListService) ToggleItem(ctx context.Context, listID, itemID string) (*domain.GroceryListItem, error) {
	var item domain.GroceryListItem
	_, err := s.store.UpdateGroceryListFunc(ctx, listID, func(list *domain.GroceryList) error {
		i := list.Item(itemID)
		if i < 0 {
			return itemNotFound(listID, itemID)
		}
		list.Items[i].IsChecked = !list.Items[i].IsChecked
		item = list.Items[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemRequest contains the fields of an item that can be edited.
// Quantity and unit are set together or not at all. ClearQuantity turns the
// item into a to-taste entry.
type UpdateItemRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Quantity      *float64 `json:"quantity,omitempty" validate:"omitempty,finite,gt=0"`
	Unit          *string  `json:"unit,omitempty" validate:"omitempty,notblank,max=50"`
	ClearQuantity bool     `json:"clear_quantity,omitempty"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,notblank,max=100"`
	IsChecked     *bool    `json:"is_checked,omitempty"`
}

// UpdateItem edits an item and recomputes its retail suggestion.
func (s *GroceryListService) UpdateItem(ctx context.Context, listID, itemID string, req UpdateItemRequest) (*domain.GroceryListItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if (req.Quantity == nil) != (req.Unit == nil) {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"quantity": "quantity and unit must be set together",
		})
	}
	if req.ClearQuantity && req.Quantity != nil {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"clear_quantity": "cannot be combined with quantity",
		})
	}

	var updated domain.GroceryListItem
	_, err := s.store.UpdateGroceryListFunc(ctx, listID, func(list *domain.GroceryList) error {
		i := list.Item(itemID)
		if i < 0 {
			return itemNotFound(listID, itemID)
		}

		item := &list.Items[i]
		if req.Name != nil {
			item.Name = strings.TrimSpace(*req.Name)
			// Two items with one key would split later additions between them.
			if j := list.ItemByKey(item.Key()); j >= 0 && j != i {
				return domainerrors.Conflictf("grocery list %s already has an item %q", listID, list.Items[j].Name)
			}
		}
		if req.Quantity != nil {
			q := *req.Quantity
			item.Quantity = &q
			item.Unit = units.Normalize(*req.Unit)
		}
		if req.ClearQuantity {
			item.Quantity = nil
			item.Unit = ""
		}
		if req.Category != nil {
			item.Category = strings.TrimSpace(*req.Category)
		}
		if req.IsChecked != nil {
			item.IsChecked = *req.IsChecked
		}
		item.LineItem = s.consolidator.Price(item.LineItem)
		updated = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ExportGroceryList flattens a list for ordering integrations.
func (s *GroceryListService) ExportGroceryList(ctx context.Context, listID string) ([]grocery.ExportItem, error) {
	list, err := s.store.GetGroceryList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return grocery.Export(list.LineItems()), nil
}

// PreviewRecipe is an unsaved recipe in a preview request.
type PreviewRecipe struct {
	ID          int64               `json:"id" validate:"gte=0"`
	Name        string              `json:"name,omitempty" validate:"max=200"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"max=200,dive"`
}

// PreviewRequest lists the recipes to consolidate without saving.
type PreviewRequest struct {
	Recipes []PreviewRecipe `json:"recipes" validate:"max=100,dive"`
}

// Preview consolidates recipes without touching the store. Recipes without
// an ID are numbered in order after the largest explicit ID, so they never
// share a contributor with another recipe in the request.
func (s *GroceryListService) Preview(req PreviewRequest) ([]grocery.LineItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var nextID int64
	for _, pr := range req.Recipes {
		nextID = max(nextID, pr.ID)
	}

	recipes := make([]grocery.Recipe, len(req.Recipes))
	for i, pr := range req.Recipes {
		r := domain.Recipe{
			ID:          pr.ID,
			Name:        pr.Name,
			Ingredients: toRecipeIngredients(pr.Ingredients),
		}
		if r.ID == 0 {
			nextID++
			r.ID = nextID
		}
		recipes[i] = r.Consolidation()
	}
	return s.consolidator.Consolidate(recipes), nil
}

func itemNotFound(listID, itemID string) error {
	return domainerrors.NotFoundf("item %s not found on grocery list %s", itemID, listID)
}
