package ingredient

import "strings"

// Store-section labels.
const (
	CategoryProduce   = "Produce"
	CategoryDairy     = "Dairy"
	CategoryMeat      = "Meat & Seafood"
	CategoryBakery    = "Bakery & Bread"
	CategoryPantry    = "Pantry"
	CategoryFrozen    = "Frozen"
	CategoryBeverages = "Beverages"
	CategoryEggs      = "Eggs"
	CategoryOther     = "Other"
)

type categoryKeywords struct {
	category string
	keywords []string
}

// categoryTable is scanned in order; the first category with a keyword hit
// wins, so "cheese" lands in Dairy before any Pantry keyword is tried.
//
//nolint:gochecknoglobals // Static lookup table for categorization
var categoryTable = []categoryKeywords{
	{CategoryProduce, []string{
		"lettuce", "tomato", "onion", "garlic", "pepper", "carrot", "celery",
		"broccoli", "spinach", "kale", "cucumber", "zucchini", "squash",
		"potato", "sweet potato", "mushroom", "avocado", "lemon", "lime",
		"orange", "apple", "banana", "berry", "strawberry", "blueberry",
		"grape", "mango", "pineapple", "melon", "watermelon", "peach",
		"pear", "plum", "cherry", "ginger", "cilantro", "parsley", "basil",
		"mint", "dill", "rosemary", "thyme", "scallion", "leek", "shallot",
		"cabbage", "corn", "peas", "beans", "asparagus", "artichoke",
		"eggplant", "beet", "radish", "turnip", "spring onion", "green onion",
	}},
	{CategoryDairy, []string{
		"milk", "cream", "butter", "cheese", "yogurt", "sour cream",
		"cream cheese", "cottage cheese", "ricotta", "mozzarella",
		"parmesan", "cheddar", "feta", "goat cheese", "brie", "swiss",
		"half and half", "whipping cream", "heavy cream", "buttermilk",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal",
		"bacon", "ham", "sausage", "ground beef", "steak", "roast",
		"salmon", "tuna", "shrimp", "crab", "lobster", "fish", "cod",
		"tilapia", "halibut", "scallop", "mussel", "clam", "oyster",
		"anchovy", "sardine", "trout", "sea bass", "prawn",
	}},
	{CategoryBakery, []string{
		"bread", "baguette", "roll", "bun", "croissant", "bagel",
		"tortilla", "pita", "naan", "flatbread", "english muffin",
		"breadcrumb", "panko", "crouton",
	}},
	{CategoryPantry, []string{
		"flour", "sugar", "salt", "pepper", "oil", "olive oil", "vegetable oil",
		"vinegar", "soy sauce", "honey", "maple syrup", "vanilla",
		"baking powder", "baking soda", "yeast", "cornstarch", "cocoa",
		"chocolate", "rice", "pasta", "noodle", "oat", "cereal",
		"canned", "broth", "stock", "tomato paste", "tomato sauce",
		"beans", "lentil", "chickpea", "peanut butter", "jam", "jelly",
		"mustard", "ketchup", "mayonnaise", "hot sauce", "worcestershire",
		"sesame oil", "fish sauce", "oyster sauce", "hoisin", "sriracha",
		"cumin", "paprika", "cinnamon", "oregano", "basil", "thyme",
		"nutmeg", "clove", "cardamom", "turmeric", "curry", "chili",
		"bay leaf", "red pepper flake", "cayenne", "garlic powder",
		"onion powder", "italian seasoning", "taco seasoning",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "frozen vegetable", "frozen fruit",
		"frozen pizza", "frozen meal",
	}},
	{CategoryBeverages, []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer",
		"sparkling", "coconut water", "almond milk", "oat milk", "soy milk",
	}},
	{CategoryEggs, []string{
		"egg", "eggs",
	}},
}

// Categorize returns the grocery store section for an ingredient name using a
// case-insensitive substring match. Unmatched names are CategoryOther.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, c := range categoryTable {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.category
			}
		}
	}
	return CategoryOther
}

// Categories returns every section label in match order, ending with
// CategoryOther.
func Categories() []string {
	out := make([]string, 0, len(categoryTable)+1)
	for _, c := range categoryTable {
		out = append(out, c.category)
	}
	return append(out, CategoryOther)
}
