package retail

import (
	"math"
	"strconv"
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// Butter is measured by the spoon but sold by weight.
const (
	butterKey          = "butter"
	butterGramsPerTbsp = 14.2
	butterGramsPerCup  = 227
)

// gramsPerDisplayOunce is the ounce used for weight display strings.
const gramsPerDisplayOunce = 28.35

// Suggestion is the shopping-friendly form of an amount. All fields are
// empty when no amount is known.
type Suggestion struct {
	Package     string `json:"package,omitempty"`
	Count       int    `json:"count,omitempty"`
	ExactAmount string `json:"exact_amount,omitempty"`
}

// Round maps an amount of a named ingredient to a package from the catalog.
// Ingredients without a catalog entry, or measured in a unit the entry cannot
// convert, only get an exact amount.
func (c *Catalog) Round(name string, quantity *float64, unit units.Unit) Suggestion {
	if quantity == nil || unit == units.None {
		return Suggestion{}
	}
	q := *quantity

	entry, ok := c.Lookup(name)
	if !ok {
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	}

	switch entry.Family {
	case units.Volume:
		return roundVolume(entry, q, unit)
	case units.Weight:
		return roundWeight(entry, name, q, unit)
	case units.Count:
		return roundCount(entry, q, unit)
	case units.Unitless:
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	default:
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	}
}

func roundVolume(entry Entry, q float64, unit units.Unit) Suggestion {
	if units.FamilyOf(unit) != units.Volume {
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	}
	ml := q * units.Factor(unit)

	s := Suggestion{ExactAmount: FormatAmount(units.Round(ml/units.Factor(units.Cup), 2), units.Cup)}
	s.Package, s.Count = pick(entry.Packages, ml)
	return s
}

func roundWeight(entry Entry, name string, q float64, unit units.Unit) Suggestion {
	isButter := strings.Contains(strings.ToLower(name), butterKey)

	var grams float64
	switch {
	case units.FamilyOf(unit) == units.Weight:
		grams = q * units.Factor(unit)
	case isButter && unit == units.Tablespoon:
		grams = q * butterGramsPerTbsp
	case isButter && unit == units.Cup:
		grams = q * butterGramsPerCup
	default:
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	}

	var s Suggestion
	if isButter {
		s.ExactAmount = FormatAmount(units.Round(grams/butterGramsPerTbsp, 1), units.Tablespoon)
	} else {
		s.ExactAmount = FormatAmount(units.Round(grams/gramsPerDisplayOunce, 1), units.Ounce)
	}
	s.Package, s.Count = pick(entry.Packages, grams)
	return s
}

func roundCount(entry Entry, q float64, unit units.Unit) Suggestion {
	if f := units.FamilyOf(unit); f == units.Volume || f == units.Weight {
		return Suggestion{ExactAmount: FormatAmount(q, unit)}
	}
	needed := math.Max(math.Trunc(q), 1)

	s := Suggestion{ExactAmount: formatQuantity(needed) + " needed"}
	s.Package, s.Count = pick(entry.Packages, needed)
	return s
}

// maxPackageCount caps suggested counts for absurd amounts.
const maxPackageCount = math.MaxInt32

// pick returns the smallest package holding total, or the largest package
// and how many of it are needed.
func pick(pkgs []Package, total float64) (string, int) {
	for _, p := range pkgs {
		if p.Size >= total {
			return p.Label, 1
		}
	}
	largest := pkgs[len(pkgs)-1]
	n := math.Ceil(total / largest.Size)
	if !(n < maxPackageCount) {
		return largest.Label, maxPackageCount
	}
	return largest.Label, max(int(n), 1)
}

type fraction struct {
	value float64
	label string
}

// Common fractions shown for amounts under one, tried in order.
var fractions = []fraction{
	{0.25, "1/4"},
	{0.33, "1/3"},
	{0.5, "1/2"},
	{0.67, "2/3"},
	{0.75, "3/4"},
}

// fractionTolerance is how close an amount must be to snap to a fraction.
const fractionTolerance = 0.05

// FormatAmount renders a quantity and unit for display.
// 2 cup -> "2 cup", 0.5 cup -> "1/2 cup", 1.25 lb -> "1.25 lb".
// Count units render the bare number.
func FormatAmount(q float64, unit units.Unit) string {
	s := formatQuantity(q)
	if unit == units.None || unit == units.Each {
		return s
	}
	return s + " " + string(unit)
}

func formatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return strconv.FormatFloat(q, 'f', 0, 64)
	}
	if q < 1 {
		for _, f := range fractions {
			if math.Abs(q-f.value) < fractionTolerance {
				return f.label
			}
		}
	}
	s := strconv.FormatFloat(q, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
