package grocery

import (
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// dairyLiquids are always shown in cups, never in spoons.
var dairyLiquids = []string{"milk", "cream", "half and half", "buttermilk"}

// Thresholds for switching between display units.
const (
	gallonQuarts = 3.5
	minDairyCups = 0.25
	quartsPerGal = 4
)

// Combine adds two amounts of the same ingredient.
// Identical units are summed directly. Two volumes or two weights are summed
// in their base unit and re-expressed in a practical shopping unit. Anything
// else is added numerically, keeping the first non-empty unit.
func Combine(q1 float64, u1 units.Unit, q2 float64, u2 units.Unit, name string) (float64, units.Unit) {
	u1, u2 = units.Normalize(string(u1)), units.Normalize(string(u2))
	if u1 == u2 {
		return q1 + q2, u1
	}

	b1, f1, ok1 := units.ToBase(q1, u1)
	b2, f2, ok2 := units.ToBase(q2, u2)
	if ok1 && ok2 && f1 == f2 {
		switch f1 {
		case units.Volume:
			return practicalVolume(b1+b2, name)
		case units.Weight:
			return practicalWeight(b1 + b2)
		case units.Count, units.Unitless:
		}
	}

	unit := u1
	if unit == units.None {
		unit = u2
	}
	return q1 + q2, unit
}

// practicalVolume expresses milliliters in the unit a shopper would use.
func practicalVolume(ml float64, name string) (float64, units.Unit) {
	quart := units.Factor(units.Quart)
	pint := units.Factor(units.Pint)
	cup := units.Factor(units.Cup)
	tbsp := units.Factor(units.Tablespoon)

	switch {
	case ml >= quart:
		quarts := ml / quart
		if quarts >= gallonQuarts {
			return units.Round(quarts/quartsPerGal, 2), units.Gallon
		}
		return units.Round(quarts, 2), units.Quart
	case ml >= pint:
		return units.Round(ml/pint, 2), units.Pint
	case ml >= cup || isDairyLiquid(name):
		cups := ml / cup
		if cups < minDairyCups {
			return minDairyCups, units.Cup
		}
		return units.Round(cups, 2), units.Cup
	case ml >= tbsp:
		return units.Round(ml/tbsp, 2), units.Tablespoon
	default:
		return units.Round(ml/units.Factor(units.Teaspoon), 2), units.Teaspoon
	}
}

// practicalWeight expresses grams in pounds, ounces or grams.
func practicalWeight(g float64) (float64, units.Unit) {
	lb := units.Factor(units.Pound)
	oz := units.Factor(units.Ounce)

	switch {
	case g >= lb:
		return units.Round(g/lb, 2), units.Pound
	case g >= oz:
		return units.Round(g/oz, 2), units.Ounce
	default:
		return units.Round(g, 1), units.Gram
	}
}

func isDairyLiquid(name string) bool {
	lower := strings.ToLower(name)
	for _, d := range dairyLiquids {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
