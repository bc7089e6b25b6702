package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
)

func ptr(f float64) *float64 { return &f }

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("item-%d", n), nil
	}
}

func sampleList() *GroceryList {
	return &GroceryList{
		ID:        "gl-1",
		Name:      DefaultGroceryListName,
		RecipeIDs: []int64{1, 2},
		Items: []GroceryListItem{
			{ID: "item-a", IsChecked: true, LineItem: grocery.LineItem{Name: "Flour", RecipeIDs: []int64{1, 2}}},
			{ID: "item-b", LineItem: grocery.LineItem{Name: "Sugar", RecipeIDs: []int64{2}}},
			{ID: "item-c", LineItem: grocery.LineItem{Name: "Milk", RecipeIDs: []int64{1}}},
		},
	}
}

func TestRecipe_Consolidation(t *testing.T) {
	r := &Recipe{
		ID:   7,
		Name: "Pancakes",
		Ingredients: []RecipeIngredient{
			{Name: "flour", Quantity: ptr(2), Unit: "cups"},
			{Name: "salt"},
		},
	}

	got := r.Consolidation()

	assert.Equal(t, int64(7), got.ID)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, grocery.Requirement{Name: "flour", Quantity: ptr(2), Unit: "cups", RecipeID: 7}, got.Ingredients[0])
	assert.Equal(t, int64(7), got.Ingredients[1].RecipeID)
}

func TestRecipe_IsLive(t *testing.T) {
	var missing *Recipe
	assert.False(t, missing.IsLive())
	assert.True(t, (&Recipe{}).IsLive())
	assert.False(t, (&Recipe{Deleted: true}).IsLive())
}

func TestGroceryList_Lookups(t *testing.T) {
	l := sampleList()

	assert.True(t, l.HasRecipe(2))
	assert.False(t, l.HasRecipe(3))
	assert.Equal(t, 1, l.Item("item-b"))
	assert.Equal(t, -1, l.Item("item-z"))
	assert.Equal(t, 1, l.ItemByKey("sugar"))
	assert.Equal(t, -1, l.ItemByKey("butter"))
	assert.Equal(t, 1, l.Checked())

	lines := l.LineItems()
	lines[0].RecipeIDs[0] = 99
	assert.Equal(t, int64(1), l.Items[0].RecipeIDs[0], "LineItems returns copies")
}

func TestGroceryList_Extend(t *testing.T) {
	l := sampleList()
	lines := append(l.LineItems(), grocery.LineItem{Name: "Eggs", RecipeIDs: []int64{3}})
	lines[1].RecipeIDs = []int64{2, 3}

	require.NoError(t, l.Extend(lines, sequentialIDs()))

	require.Len(t, l.Items, 4)
	assert.Equal(t, "item-a", l.Items[0].ID)
	assert.True(t, l.Items[0].IsChecked)
	assert.Equal(t, []int64{2, 3}, l.Items[1].RecipeIDs)
	assert.Equal(t, "item-1", l.Items[3].ID)
	assert.False(t, l.Items[3].IsChecked)
}

func TestGroceryList_ExtendIDFailure(t *testing.T) {
	l := sampleList()
	lines := append(l.LineItems(), grocery.LineItem{Name: "Eggs"})

	err := l.Extend(lines, func() (string, error) { return "", errors.New("no entropy") })
	assert.Error(t, err)
	assert.Len(t, l.Items, 3, "items unchanged on failure")
}

func TestGroceryList_Shrink(t *testing.T) {
	l := sampleList()
	lines := grocery.New(nil, nil).Remove(l.LineItems(), 2)

	l.Shrink(2, lines)

	assert.Equal(t, []int64{1}, l.RecipeIDs)
	require.Len(t, l.Items, 2)
	assert.Equal(t, "item-a", l.Items[0].ID)
	assert.True(t, l.Items[0].IsChecked)
	assert.Equal(t, []int64{1}, l.Items[0].RecipeIDs)
	assert.Equal(t, "item-c", l.Items[1].ID)
}
