package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		q1       float64
		u1       units.Unit
		q2       float64
		u2       units.Unit
		item     string
		wantQty  float64
		wantUnit units.Unit
	}{
		{"same unit", 1, units.Cup, 1, units.Cup, "milk", 2, units.Cup},
		{"same after normalizing", 1, units.Unit("Cups"), 1, units.Cup, "flour", 2, units.Cup},
		{"spoons into cups", 8, units.Tablespoon, 1, units.Cup, "milk", 1.5, units.Cup},
		{"stays in tablespoons", 2, units.Tablespoon, 1, units.Teaspoon, "water", 2.33, units.Tablespoon},
		{"stays in teaspoons", 1, units.Teaspoon, 1, units.Milliliter, "vanilla", 1.2, units.Teaspoon},
		{"dairy floor", 1, units.Tablespoon, 1, units.Teaspoon, "milk", 0.25, units.Cup},
		{"dairy below a cup", 3, units.Tablespoon, 1, units.FluidOunce, "heavy cream", 0.31, units.Cup},
		{"pints", 1, units.Cup, 8, units.FluidOunce, "stock", 1, units.Pint},
		{"same unit never rescales", 3, units.Cup, 2.5, units.Unit("cups"), "stock", 5.5, units.Cup},
		{"quarts from mixed", 3, units.Cup, 1, units.Pint, "stock", 1.25, units.Quart},
		{"gallons", 16, units.Cup, 1, units.Quart, "milk", 1.25, units.Gallon},
		{"pounds", 1, units.Pound, 8, units.Ounce, "beef", 1.5, units.Pound},
		{"ounces", 10, units.Gram, 1, units.Ounce, "cheese", 1.35, units.Ounce},
		{"grams", 0.005, units.Kilogram, 10, units.Gram, "yeast", 15, units.Gram},
		{"volume and weight", 1, units.Cup, 100, units.Gram, "flour", 101, units.Cup},
		{"opaque and volume", 2, units.Unit("clove"), 1, units.Cup, "garlic", 3, units.Unit("clove")},
		{"empty first unit", 5, units.None, 1, units.Cup, "rice", 6, units.Cup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, u := Combine(tt.q1, tt.u1, tt.q2, tt.u2, tt.item)
			assert.InDelta(t, tt.wantQty, q, 1e-9)
			assert.Equal(t, tt.wantUnit, u)
		})
	}
}

func TestCombine_Associative(t *testing.T) {
	type amount struct {
		q float64
		u units.Unit
	}
	a := amount{1, units.Cup}
	b := amount{8, units.Tablespoon}
	c := amount{1, units.Cup}

	abQ, abU := Combine(a.q, a.u, b.q, b.u, "milk")
	leftQ, leftU := Combine(abQ, abU, c.q, c.u, "milk")

	bcQ, bcU := Combine(b.q, b.u, c.q, c.u, "milk")
	rightQ, rightU := Combine(a.q, a.u, bcQ, bcU, "milk")

	assert.Equal(t, leftU, rightU)
	assert.InDelta(t, leftQ, rightQ, 0.01)
	assert.InDelta(t, 2.5, leftQ, 0.01)
}
