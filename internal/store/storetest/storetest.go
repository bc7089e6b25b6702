// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// Factory opens a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

// Run exercises the full Store contract.
func Run(t *testing.T, open Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(*testing.T, store.Store)
	}{
		{"RecipeLifecycle", testRecipeLifecycle},
		{"RecipeSourceURL", testRecipeSourceURL},
		{"GetRecipesByIDs", testGetRecipesByIDs},
		{"GroceryListLifecycle", testGroceryListLifecycle},
		{"ListGroceryListsOrder", testListGroceryListsOrder},
		{"UpdateGroceryListFunc", testUpdateGroceryListFunc},
		{"UpdateGroceryListFuncConcurrent", testUpdateGroceryListFuncConcurrent},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func ptr(f float64) *float64 { return &f }

// NewRecipe builds a recipe fixture.
func NewRecipe(name string, ings ...domain.RecipeIngredient) *domain.Recipe {
	if len(ings) == 0 {
		ings = []domain.RecipeIngredient{{Name: "flour", Quantity: ptr(1), Unit: "cup"}}
	}
	return &domain.Recipe{Name: name, Ingredients: ings}
}

func testRecipeLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	first := NewRecipe("Pancakes",
		domain.RecipeIngredient{Name: "flour", Quantity: ptr(1.5), Unit: "cups"},
		domain.RecipeIngredient{Name: "salt"},
	)
	require.NoError(t, s.CreateRecipe(ctx, first))
	second := NewRecipe("Waffles")
	require.NoError(t, s.CreateRecipe(ctx, second))

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	got, err := s.GetRecipe(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "cups", got.Ingredients[0].Unit)
	require.NotNil(t, got.Ingredients[0].Quantity)
	assert.InDelta(t, 1.5, *got.Ingredients[0].Quantity, 1e-9)
	assert.Nil(t, got.Ingredients[1].Quantity)

	list, err := s.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, s.DeleteRecipe(ctx, first.ID))

	got, err = s.GetRecipe(ctx, first.ID)
	require.NoError(t, err, "soft-deleted recipes stay readable")
	assert.True(t, got.Deleted)

	list, err = s.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	err = s.DeleteRecipe(ctx, first.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "deleting twice")

	_, err = s.GetRecipe(ctx, 9999)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteRecipe(ctx, 9999), domainerrors.ErrNotFound)
}

func testRecipeSourceURL(t *testing.T, s store.Store) {
	ctx := context.Background()
	const url = "https://www.youtube.com/watch?v=abc123"

	r := NewRecipe("Curry")
	r.SourceURL = url
	require.NoError(t, s.CreateRecipe(ctx, r))

	got, err := s.FindRecipeBySourceURL(ctx, "  HTTPS://www.youtube.com/watch?v=ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = s.FindRecipeBySourceURL(ctx, "https://example.com/other")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting frees the URL for a fresh import.
	require.NoError(t, s.DeleteRecipe(ctx, r.ID))
	_, err = s.FindRecipeBySourceURL(ctx, url)
	assert.ErrorIs(t, err, store.ErrNotFound)

	again := NewRecipe("Curry v2")
	again.SourceURL = url
	require.NoError(t, s.CreateRecipe(ctx, again))
	got, err = s.FindRecipeBySourceURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, again.ID, got.ID)
}

func testGetRecipesByIDs(t *testing.T, s store.Store) {
	ctx := context.Background()

	a, b, c := NewRecipe("A"), NewRecipe("B"), NewRecipe("C")
	for _, r := range []*domain.Recipe{a, b, c} {
		require.NoError(t, s.CreateRecipe(ctx, r))
	}
	require.NoError(t, s.DeleteRecipe(ctx, b.ID))

	got, err := s.GetRecipesByIDs(ctx, []int64{c.ID, 4242, b.ID, a.ID, c.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	got, err = s.GetRecipesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func sampleList(id string) *domain.GroceryList {
	return &domain.GroceryList{
		ID:        id,
		Name:      domain.DefaultGroceryListName,
		RecipeIDs: []int64{1, 2},
		Items: []domain.GroceryListItem{
			{
				ID:        "item-1",
				IsChecked: true,
				LineItem: grocery.LineItem{
					Name:               "Milk",
					Quantity:           ptr(3),
					Unit:               units.Cup,
					Category:           "Dairy",
					RecipeIDs:          []int64{1, 2},
					RetailPackage:      "1 quart",
					RetailPackageCount: 1,
					ExactAmount:        "3 cup",
				},
			},
			{
				ID: "item-2",
				LineItem: grocery.LineItem{
					Name:      "Salt",
					Category:  "Pantry",
					RecipeIDs: []int64{2},
				},
			},
		},
	}
}

func testGroceryListLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	list := sampleList("gl-1")
	require.NoError(t, s.CreateGroceryList(ctx, list))
	assert.False(t, list.CreatedAt.IsZero())

	assert.ErrorIs(t, s.CreateGroceryList(ctx, sampleList("gl-1")), domainerrors.ErrConflict)

	got, err := s.GetGroceryList(ctx, "gl-1")
	require.NoError(t, err)
	assert.Equal(t, list.Name, got.Name)
	assert.Equal(t, []int64{1, 2}, got.RecipeIDs)
	require.Len(t, got.Items, 2)
	assert.Equal(t, list.Items[0].ID, got.Items[0].ID)
	assert.True(t, got.Items[0].IsChecked)
	assert.Equal(t, list.Items[0].LineItem, got.Items[0].LineItem)
	assert.Nil(t, got.Items[1].Quantity)
	assert.Equal(t, units.None, got.Items[1].Unit)
	assert.WithinDuration(t, list.CreatedAt, got.CreatedAt, time.Millisecond)

	got.Name = "Weekend"
	got.Items = got.Items[:1]
	got.Items[0].IsChecked = false
	got.RecipeIDs = []int64{1}
	before := got.UpdatedAt
	require.NoError(t, s.UpdateGroceryList(ctx, got))
	assert.False(t, got.UpdatedAt.Before(before))

	got, err = s.GetGroceryList(ctx, "gl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Name)
	require.Len(t, got.Items, 1)
	assert.False(t, got.Items[0].IsChecked)
	assert.Equal(t, []int64{1}, got.RecipeIDs)

	missing := sampleList("gl-missing")
	assert.ErrorIs(t, s.UpdateGroceryList(ctx, missing), domainerrors.ErrNotFound)

	require.NoError(t, s.DeleteGroceryList(ctx, "gl-1"))
	_, err = s.GetGroceryList(ctx, "gl-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteGroceryList(ctx, "gl-1"), domainerrors.ErrNotFound)
}

func testListGroceryListsOrder(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, id := range []string{"gl-a", "gl-b", "gl-c"} {
		require.NoError(t, s.CreateGroceryList(ctx, sampleList(id)))
		time.Sleep(2 * time.Millisecond)
	}

	a, err := s.GetGroceryList(ctx, "gl-a")
	require.NoError(t, err)
	require.NoError(t, s.UpdateGroceryList(ctx, a))

	lists, err := s.ListGroceryLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, "gl-a", lists[0].ID)
	assert.Equal(t, "gl-c", lists[1].ID)
	assert.Equal(t, "gl-b", lists[2].ID)
}

func testUpdateGroceryListFunc(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroceryList(ctx, sampleList("gl-1")))

	updated, err := s.UpdateGroceryListFunc(ctx, "gl-1", func(l *domain.GroceryList) error {
		l.Name = "Weekend"
		l.Items[1].IsChecked = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekend", updated.Name)

	got, err := s.GetGroceryList(ctx, "gl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Name)
	assert.True(t, got.Items[1].IsChecked)

	// A failing fn writes nothing and its error comes back as is.
	errStop := errors.New("stop")
	_, err = s.UpdateGroceryListFunc(ctx, "gl-1", func(l *domain.GroceryList) error {
		l.Name = "Discarded"
		return errStop
	})
	assert.Same(t, errStop, err)

	got, err = s.GetGroceryList(ctx, "gl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Name)

	called := false
	_, err = s.UpdateGroceryListFunc(ctx, "gl-missing", func(*domain.GroceryList) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.False(t, called)
}

func testUpdateGroceryListFuncConcurrent(t *testing.T, s store.Store) {
	ctx := context.Background()
	list := sampleList("gl-1")
	list.RecipeIDs = nil
	require.NoError(t, s.CreateGroceryList(ctx, list))

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateGroceryListFunc(ctx, "gl-1", func(l *domain.GroceryList) error {
				l.RecipeIDs = append(l.RecipeIDs, int64(i+1))
				q := *l.Items[0].Quantity + 1
				l.Items[0].Quantity = &q
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetGroceryList(ctx, "gl-1")
	require.NoError(t, err)
	assert.Len(t, got.RecipeIDs, writers)
	assert.ElementsMatch(t, seq(1, writers), got.RecipeIDs)
	require.NotNil(t, got.Items[0].Quantity)
	assert.InDelta(t, 3.0+writers, *got.Items[0].Quantity, 1e-9)
}

func seq(from, to int) []int64 {
	out := make([]int64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, int64(i))
	}
	return out
}

func testPing(t *testing.T, s store.Store) {
	assert.NoError(t, s.Ping(context.Background()))
}
