package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/store/sqlite"
)

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupTestServices(t *testing.T) (*RecipeService, *GroceryListService) {
	t.Helper()
	return newServices(setupTestStore(t))
}

func newServices(s store.Store) (*RecipeService, *GroceryListService) {
	return NewRecipeService(s, nil), NewGroceryListService(s, grocery.New(retail.US(), nil), nil)
}

// testDrivers opens a fresh store of each driver.
var testDrivers = []struct {
	name string
	open func(t *testing.T) store.Store
}{
	{"badger", setupTestStore},
	{"sqlite", func(t *testing.T) store.Store {
		t.Helper()
		s, err := sqlite.Open(filepath.Join(t.TempDir(), "grocery.db"), nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}},
}

func ptr(f float64) *float64 { return &f }

func ing(name string, qty float64, unit string) IngredientRequest {
	return IngredientRequest{Name: name, Quantity: ptr(qty), Unit: unit}
}

func findItem(t *testing.T, list *domain.GroceryList, name string) domain.GroceryListItem {
	t.Helper()
	for _, it := range list.Items {
		if it.Name == name {
			return it
		}
	}
	require.Failf(t, "item not found", "no item named %q", name)
	return domain.GroceryListItem{}
}
