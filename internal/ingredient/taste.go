package ingredient

import (
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// pantryStaples are ingredients most kitchens already stock.
//
//nolint:gochecknoglobals // Static lookup table for staple detection
var pantryStaples = []string{
	"salt", "pepper", "black pepper", "white pepper", "sugar", "flour",
	"olive oil", "vegetable oil", "cooking oil", "butter", "garlic",
	"onion powder", "garlic powder", "paprika", "cumin", "oregano",
	"basil", "thyme", "rosemary", "cinnamon", "nutmeg", "bay leaf",
	"red pepper flake", "cayenne", "chili powder", "curry powder",
	"italian seasoning", "vanilla extract", "vanilla", "baking powder",
	"baking soda", "cornstarch", "soy sauce", "vinegar", "honey",
	"breadcrumb", "breadcrumbs", "panko",
}

// maxToTasteSpoons is the largest spoon measure of a staple still treated as
// "to taste".
const maxToTasteSpoons = 2

// IsPantryStaple reports whether the name contains a pantry staple keyword.
func IsPantryStaple(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range pantryStaples {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// IsToTaste reports whether a requirement's amount should be left off the
// list. A missing or zero quantity is always elided, as is a spoon-sized
// measure (at most two) of a pantry staple.
func IsToTaste(quantity *float64, unit units.Unit, name string) bool {
	if quantity == nil || *quantity == 0 {
		return true
	}
	return IsPantryStaple(name) && units.IsSmallVolume(unit) && *quantity <= maxToTasteSpoons
}
