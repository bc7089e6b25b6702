// Package units defines the canonical cooking unit vocabulary, its synonyms,
// and conversion factors to the base unit of each family.
//
// Volume units convert to milliliters and weight units convert to grams.
// Count and unitless tokens have no base conversion; they combine only with
// an identical token.
package units

import (
	"math"
	"strings"
)

// Family is the dimensional class of a unit.
type Family int

// Unit families.
const (
	Unitless Family = iota
	Volume
	Weight
	Count
)

// String returns the lowercase family name.
func (f Family) String() string {
	switch f {
	case Volume:
		return "volume"
	case Weight:
		return "weight"
	case Count:
		return "count"
	default:
		return "unitless"
	}
}

// Unit is a normalized unit token. Tokens outside the canonical vocabulary
// are kept verbatim (lowercased and trimmed) and treated as opaque.
type Unit string

// None is the absent unit.
const None Unit = ""

// Canonical volume units.
const (
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	FluidOunce Unit = "fl oz"
	Cup        Unit = "cup"
	Pint       Unit = "pint"
	Quart      Unit = "quart"
	Gallon     Unit = "gallon"
)

// Canonical weight units.
const (
	Gram     Unit = "g"
	Kilogram Unit = "kg"
	Ounce    Unit = "oz"
	Pound    Unit = "lb"
)

// Canonical count and unitless units.
const (
	Each  Unit = "count"
	Pinch Unit = "pinch"
	Dash  Unit = "dash"
)

// Milliliters per volume unit.
var mlPer = map[Unit]float64{
	Milliliter: 1,
	Liter:      1000,
	Teaspoon:   4.929,
	Tablespoon: 14.787,
	FluidOunce: 29.574,
	Cup:        236.588,
	Pint:       473.176,
	Quart:      946.353,
	Gallon:     3785.41,
}

// Grams per weight unit.
var gramsPer = map[Unit]float64{
	Gram:     1,
	Kilogram: 1000,
	Ounce:    28.3495,
	Pound:    453.592,
}

// synonyms maps every accepted spelling to exactly one canonical token.
// Canonical tokens map to themselves.
var synonyms = map[string]Unit{
	"ml":           Milliliter,
	"milliliter":   Milliliter,
	"milliliters":  Milliliter,
	"millilitre":   Milliliter,
	"millilitres":  Milliliter,
	"l":            Liter,
	"liter":        Liter,
	"liters":       Liter,
	"litre":        Liter,
	"litres":       Liter,
	"tsp":          Teaspoon,
	"tsps":         Teaspoon,
	"teaspoon":     Teaspoon,
	"teaspoons":    Teaspoon,
	"tbsp":         Tablespoon,
	"tbsps":        Tablespoon,
	"tbs":          Tablespoon,
	"tablespoon":   Tablespoon,
	"tablespoons":  Tablespoon,
	"fl oz":        FluidOunce,
	"fl. oz":       FluidOunce,
	"fluid ounce":  FluidOunce,
	"fluid ounces": FluidOunce,
	"cup":          Cup,
	"cups":         Cup,
	"pint":         Pint,
	"pints":        Pint,
	"pt":           Pint,
	"quart":        Quart,
	"quarts":       Quart,
	"qt":           Quart,
	"gallon":       Gallon,
	"gallons":      Gallon,
	"gal":          Gallon,
	"g":            Gram,
	"gram":         Gram,
	"grams":        Gram,
	"kg":           Kilogram,
	"kilogram":     Kilogram,
	"kilograms":    Kilogram,
	"oz":           Ounce,
	"ounce":        Ounce,
	"ounces":       Ounce,
	"lb":           Pound,
	"lbs":          Pound,
	"pound":        Pound,
	"pounds":       Pound,
	"count":        Each,
	"each":         Each,
	"ea":           Each,
	"piece":        Each,
	"pieces":       Each,
	"pc":           Each,
	"pcs":          Each,
	"whole":        Each,
	"pinch":        Pinch,
	"pinches":      Pinch,
	"dash":         Dash,
	"dashes":       Dash,
}

// Normalize maps a raw unit string to its canonical token. Unknown strings
// are returned lowercased and trimmed. Blank input yields None.
func Normalize(raw string) Unit {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return None
	}
	if u, ok := synonyms[s]; ok {
		return u
	}
	return Unit(s)
}

// FamilyOf reports the family of a normalized unit.
// Unknown tokens, pinch and dash are Unitless.
func FamilyOf(u Unit) Family {
	if _, ok := mlPer[u]; ok {
		return Volume
	}
	if _, ok := gramsPer[u]; ok {
		return Weight
	}
	if u == Each {
		return Count
	}
	return Unitless
}

// Factor returns the base-unit factor for a volume (ml) or weight (g) unit,
// or 0 when the unit has no base conversion.
func Factor(u Unit) float64 {
	if f, ok := mlPer[u]; ok {
		return f
	}
	return gramsPer[u]
}

// ToBase converts q in unit u to milliliters or grams.
// ok is false for count and unitless units.
func ToBase(q float64, u Unit) (value float64, family Family, ok bool) {
	if f, found := mlPer[u]; found {
		return q * f, Volume, true
	}
	if f, found := gramsPer[u]; found {
		return q * f, Weight, true
	}
	return 0, FamilyOf(u), false
}

// Combinable reports whether quantities in a and b can be summed.
// Identical tokens always combine; otherwise both must share the
// volume or weight family.
func Combinable(a, b Unit) bool {
	if a == b {
		return true
	}
	fa, fb := FamilyOf(a), FamilyOf(b)
	return fa == fb && (fa == Volume || fa == Weight)
}

// IsSmallVolume reports whether u is a spoon-sized measure.
func IsSmallVolume(u Unit) bool {
	switch u {
	case Teaspoon, Tablespoon, Pinch, Dash:
		return true
	default:
		return false
	}
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := 1.0
	for range decimals {
		p *= 10
	}
	return math.Round(x*p) / p
}
