package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

func ptr(f float64) *float64 { return &f }

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		unit  units.Unit
		want  string
	}{
		{"single prefix", "fresh basil", units.None, "Basil"},
		{"stacked prefixes", "Fresh Chopped Basil", units.None, "Basil"},
		{"order independent", "chopped fresh basil", units.None, "Basil"},
		{"multi word prefix", "room temperature butter", units.Tablespoon, "Butter"},
		{"hyphenated prefix", "low-fat milk", units.Cup, "Milk"},
		{"can hint", "Cans tomatoes", units.Unit("can"), "Tomatoes"},
		{"canned without hint", "Canned Tuna", units.None, "Tuna"},
		{"cans kept without hint", "cans tomatoes", units.None, "Cans tomatoes"},
		{"prefix needs a following word", "Fresh", units.None, "Fresh"},
		{"prefix must be whole word", "freshwater fish", units.None, "Freshwater fish"},
		{"inner casing kept", "diced San Marzano tomatoes", units.None, "San Marzano tomatoes"},
		{"whitespace trimmed", "  sliced   mushrooms  ", units.None, "Mushrooms"},
		{"empty", "", units.None, ""},
		{"unicode", "fresh épinards", units.None, "Épinards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input, tt.unit))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"fresh chopped basil",
		"Canned diced tomatoes",
		"extra-large eggs",
		"boneless skinless chicken thighs",
		"hot sauce",
		"Cold cold water",
		"ground black pepper",
		"milk",
	}
	hints := []units.Unit{units.None, units.Unit("can"), units.Unit("frozen bag"), units.Cup}

	for _, in := range inputs {
		for _, u := range hints {
			once := Clean(in, u)
			assert.Equal(t, once, Clean(once, u), "input %q unit %q", in, u)
		}
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "basil", Key(" Basil "))
	assert.Equal(t, Key(Clean("Fresh Basil", units.None)), Key(Clean("basil", units.None)))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Romaine lettuce", CategoryProduce},
		{"Cheddar cheese", CategoryDairy},
		{"Chicken breast", CategoryMeat},
		{"Sourdough bread", CategoryBakery},
		{"All-purpose flour", CategoryPantry},
		{"Ice cream", CategoryDairy},
		{"Frozen peas", CategoryProduce},
		{"Sparkling water", CategoryBeverages},
		{"Eggs", CategoryEggs},
		{"Canned Tuna", CategoryMeat},
		{"Xanthan gum", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	first := Categorize("Canned Tuna")
	for range 50 {
		assert.Equal(t, first, Categorize("Canned Tuna"))
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Equal(t, CategoryProduce, cats[0])
	assert.Equal(t, CategoryOther, cats[len(cats)-1])
	assert.Len(t, cats, 9)
}

func TestIsToTaste(t *testing.T) {
	tests := []struct {
		name string
		qty  *float64
		unit units.Unit
		item string
		want bool
	}{
		{"nil quantity", nil, units.None, "salt", true},
		{"zero quantity", ptr(0), units.Cup, "flour", true},
		{"staple teaspoon", ptr(1), units.Teaspoon, "salt", true},
		{"staple at threshold", ptr(2), units.Tablespoon, "olive oil", true},
		{"staple over threshold", ptr(3), units.Tablespoon, "salt", false},
		{"staple pinch", ptr(1), units.Pinch, "Black pepper", true},
		{"staple in cups", ptr(1), units.Cup, "sugar", false},
		{"non staple spoon", ptr(1), units.Teaspoon, "saffron", false},
		{"regular amount", ptr(2), units.Cup, "milk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsToTaste(tt.qty, tt.unit, tt.item))
		})
	}
}

func TestIsPantryStaple(t *testing.T) {
	assert.True(t, IsPantryStaple("Kosher Salt"))
	assert.True(t, IsPantryStaple("garlic powder"))
	assert.False(t, IsPantryStaple("chicken thighs"))
}
