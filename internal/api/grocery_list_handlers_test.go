package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findItemResponse(t *testing.T, list GroceryListResponse, name string) GroceryListItemResponse {
	t.Helper()
	for _, it := range list.Items {
		if it.Name == name {
			return it
		}
	}
	require.Failf(t, "item not found", "no item named %q", name)
	return GroceryListItemResponse{}
}

func (ts *testServer) seedRecipes(t *testing.T) (breakfast, dinner int64) {
	t.Helper()
	breakfast = ts.createRecipe(t, "Pancakes",
		map[string]any{"name": "milk", "quantity": 1, "unit": "cup"},
		map[string]any{"name": "eggs", "quantity": 2},
	)
	dinner = ts.createRecipe(t, "Chowder",
		map[string]any{"name": "milk", "quantity": 1, "unit": "cup"},
		map[string]any{"name": "onion", "quantity": 1},
	)
	return breakfast, dinner
}

func TestGroceryListLifecycle(t *testing.T) {
	ts := setupTestServer(t, Options{})
	breakfast, dinner := ts.seedRecipes(t)

	// Create.
	resp := ts.api.Post("/api/v1/grocery-lists", map[string]any{"recipe_ids": []int64{breakfast}})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	list := decode[GroceryListResponse](t, resp).Data
	assert.Equal(t, "My Grocery List", list.Name)
	assert.Equal(t, 2, list.ItemCount)
	base := "/api/v1/grocery-lists/" + list.ID

	// Toggle milk.
	milk := findItemResponse(t, list, "Milk")
	resp = ts.api.Post(base + "/items/" + milk.ID + "/toggle")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, decode[GroceryListItemResponse](t, resp).Data.IsChecked)

	// Add the dinner recipe.
	resp = ts.api.Post(base+"/recipes", map[string]any{"recipe_id": dinner})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	list = decode[GroceryListResponse](t, resp).Data
	assert.Equal(t, []int64{breakfast, dinner}, list.RecipeIDs)
	assert.Equal(t, 3, list.ItemCount)
	assert.Equal(t, 1, list.CheckedCount)
	merged := findItemResponse(t, list, "Milk")
	assert.Equal(t, milk.ID, merged.ID)
	require.NotNil(t, merged.Quantity)
	assert.InDelta(t, 2.0, *merged.Quantity, 1e-9)

	// Edit milk.
	resp = ts.api.Patch(base+"/items/"+milk.ID, map[string]any{"quantity": 3, "unit": "cups"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	edited := decode[GroceryListItemResponse](t, resp).Data
	assert.Equal(t, "cup", edited.Unit)
	assert.Equal(t, "1 quart", edited.RetailPackage)

	// Export.
	resp = ts.api.Get(base + "/export")
	require.Equal(t, http.StatusOK, resp.Code)
	export := decode[ExportResponse](t, resp).Data
	require.Len(t, export.Items, 3)
	assert.Equal(t, "milk", export.Items[0].Name)

	// Remove the dinner recipe.
	resp = ts.api.Delete(fmt.Sprintf("%s/recipes/%d", base, dinner))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	list = decode[GroceryListResponse](t, resp).Data
	assert.Equal(t, 2, list.ItemCount)
	assert.Equal(t, []int64{breakfast}, list.RecipeIDs)

	// List and delete.
	resp = ts.api.Get("/api/v1/grocery-lists")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[ListGroceryListsResponse](t, resp).Data.GroceryLists, 1)

	resp = ts.api.Delete(base)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	resp = ts.api.Get(base)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateGroceryList_NoLiveRecipes(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Post("/api/v1/grocery-lists", map[string]any{"recipe_ids": []int64{42}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "INVALID_ARGUMENT", decode[any](t, resp).Code)
}

func TestGroceryList_NotFound(t *testing.T) {
	ts := setupTestServer(t, Options{})
	breakfast, _ := ts.seedRecipes(t)

	tests := []struct {
		name string
		do   func() int
	}{
		{"get", func() int { return ts.api.Get("/api/v1/grocery-lists/gl-missing").Code }},
		{"add recipe", func() int {
			return ts.api.Post("/api/v1/grocery-lists/gl-missing/recipes", map[string]any{"recipe_id": breakfast}).Code
		}},
		{"toggle", func() int { return ts.api.Post("/api/v1/grocery-lists/gl-missing/items/item-x/toggle").Code }},
		{"export", func() int { return ts.api.Get("/api/v1/grocery-lists/gl-missing/export").Code }},
		{"delete", func() int { return ts.api.Delete("/api/v1/grocery-lists/gl-missing").Code }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, tt.do())
		})
	}
}

func TestUpdateItem_QuantityWithoutUnit(t *testing.T) {
	ts := setupTestServer(t, Options{})
	breakfast, _ := ts.seedRecipes(t)

	resp := ts.api.Post("/api/v1/grocery-lists", map[string]any{"recipe_ids": []int64{breakfast}})
	require.Equal(t, http.StatusCreated, resp.Code)
	list := decode[GroceryListResponse](t, resp).Data

	resp = ts.api.Patch("/api/v1/grocery-lists/"+list.ID+"/items/"+list.Items[0].ID, map[string]any{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decode[any](t, resp).Details, "quantity")
}

func TestConsolidate(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Post("/api/v1/consolidate", map[string]any{
		"recipes": []map[string]any{
			{"ingredients": []map[string]any{
				{"name": "olive oil", "quantity": 4, "unit": "tbsp"},
				{"name": "salt", "quantity": 1, "unit": "tsp"},
			}},
			{"ingredients": []map[string]any{
				{"name": "olive oil", "quantity": 3, "unit": "tablespoons"},
			}},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	out := decode[ConsolidateResponse](t, resp).Data
	assert.Equal(t, "US", out.Market)
	require.Len(t, out.Items, 2)

	oil := out.Items[0]
	assert.Equal(t, "Olive oil", oil.Name)
	require.NotNil(t, oil.Quantity)
	assert.InDelta(t, 7.0, *oil.Quantity, 1e-9)
	assert.Equal(t, "17 oz bottle", oil.RetailPackage)
	assert.Equal(t, []int64{1, 2}, oil.RecipeIDs)

	salt := out.Items[1]
	assert.Nil(t, salt.Quantity)
	assert.Empty(t, salt.RetailPackage)

	require.Len(t, out.Export, 2)
	assert.Equal(t, "olive oil", out.Export[0].Name)
}
