package grocery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	c := New(nil, nil)
	items := c.Consolidate([]Recipe{
		recipe(1, req("Milk", ptr(3), "cup"), req("Eggs", ptr(40), ""), req("Salt", nil, "")),
	})

	out := Export(items)
	require.Len(t, out, 3)

	milk := out[0]
	assert.Equal(t, "milk", milk.Name)
	assert.Equal(t, "Milk", milk.DisplayText)
	assert.Equal(t, []Measurement{{Quantity: 3, Unit: "cup"}}, milk.Measurements)
	assert.Equal(t, "1 quart", milk.SuggestedPackage)
	assert.Zero(t, milk.SuggestedQuantity)

	eggs := out[1]
	assert.Equal(t, "18-count", eggs.SuggestedPackage)
	assert.Equal(t, 3, eggs.SuggestedQuantity)
	assert.Equal(t, []Measurement{{Quantity: 40, Unit: "count"}}, eggs.Measurements)

	salt := out[2]
	assert.NotNil(t, salt.Measurements)
	assert.Empty(t, salt.Measurements)
	assert.Empty(t, salt.SuggestedPackage)
}

func TestExport_JSONShape(t *testing.T) {
	out := Export([]LineItem{{Name: "Basil"}})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"basil","display_text":"Basil","measurements":[]}]`, string(data))
}

func TestExport_Empty(t *testing.T) {
	out := Export(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
