// Package retail rounds consolidated ingredient amounts to purchasable
// package sizes using per-market package catalogs.
package retail

import (
	"fmt"
	"slices"
	"strings"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// Market codes.
const (
	MarketUS = "US"
	MarketUK = "UK"
	MarketEU = "EU"
)

// Package is one purchasable size. Size is in the entry family's base unit:
// milliliters, grams, or a plain count.
type Package struct {
	Size  float64 `json:"size"`
	Label string  `json:"label"`
}

// Entry describes the packages an ingredient is sold in.
type Entry struct {
	Key      string       `json:"key"`
	Family   units.Family `json:"-"`
	Packages []Package    `json:"packages"`
}

// Catalog is an ordered list of entries. Lookup returns the first entry whose
// key is a substring of the ingredient name, so order breaks ties.
type Catalog struct {
	market  string
	entries []Entry
}

// NewCatalog builds a catalog from entries, keeping their order. Keys are
// lowercased, packages without a positive size are dropped and the rest are
// sorted ascending by size.
func NewCatalog(market string, entries []Entry) *Catalog {
	c := &Catalog{market: market, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		pkgs := slices.DeleteFunc(slices.Clone(e.Packages), func(p Package) bool { return !(p.Size > 0) })
		slices.SortStableFunc(pkgs, func(a, b Package) int {
			switch {
			case a.Size < b.Size:
				return -1
			case a.Size > b.Size:
				return 1
			default:
				return 0
			}
		})
		c.entries = append(c.entries, Entry{
			Key:      strings.ToLower(e.Key),
			Family:   e.Family,
			Packages: pkgs,
		})
	}
	return c
}

// Market returns the catalog's market code.
func (c *Catalog) Market() string {
	return c.market
}

// Entries returns a copy of the catalog entries in lookup order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{Key: e.Key, Family: e.Family, Packages: slices.Clone(e.Packages)}
	}
	return out
}

// Lookup finds the first entry whose key appears in name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	lower := strings.ToLower(name)
	for _, e := range c.entries {
		if len(e.Packages) > 0 && strings.Contains(lower, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

// ForMarket returns a fresh catalog for a market code (case-insensitive).
func ForMarket(code string) (*Catalog, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case MarketUS, "":
		return US(), nil
	case MarketUK:
		return UK(), nil
	case MarketEU:
		return EU(), nil
	default:
		return nil, fmt.Errorf("unknown retail market %q (must be one of %s)", code, strings.Join(Markets(), ", "))
	}
}

// Markets lists the supported market codes.
func Markets() []string {
	return []string{MarketUS, MarketUK, MarketEU}
}

func volume(key string, pkgs ...Package) Entry {
	return Entry{Key: key, Family: units.Volume, Packages: pkgs}
}

func weight(key string, pkgs ...Package) Entry {
	return Entry{Key: key, Family: units.Weight, Packages: pkgs}
}

func count(key string, pkgs ...Package) Entry {
	return Entry{Key: key, Family: units.Count, Packages: pkgs}
}

// US returns the United States grocery catalog.
// Dairy keys come first, so "buttermilk" matches "milk" and "sour cream"
// matches "cream".
func US() *Catalog {
	eggs := []Package{{6, "half dozen"}, {12, "1 dozen"}, {18, "18-count"}}
	broth := []Package{{414, "14 oz can"}, {946, "32 oz carton"}}

	return NewCatalog(MarketUS, []Entry{
		volume("milk", Package{473, "1 pint"}, Package{946, "1 quart"}, Package{1893, "1/2 gallon"}, Package{3785, "1 gallon"}),
		volume("cream", Package{236, "8 oz"}, Package{473, "1 pint"}, Package{946, "1 quart"}),
		volume("half and half", Package{473, "1 pint"}, Package{946, "1 quart"}),
		volume("buttermilk", Package{946, "1 quart"}, Package{1893, "1/2 gallon"}),
		weight("butter", Package{113, "1 stick"}, Package{227, "2 sticks"}, Package{454, "1 lb"}),
		count("egg", eggs...),
		count("eggs", eggs...),
		volume("sour cream", Package{236, "8 oz"}, Package{473, "16 oz"}),
		volume("yogurt", Package{170, "6 oz"}, Package{473, "16 oz"}, Package{907, "32 oz"}),
		volume("chicken broth", broth...),
		volume("beef broth", broth...),
		volume("vegetable broth", broth...),
		volume("olive oil", Package{500, "17 oz bottle"}, Package{750, "25 oz bottle"}, Package{1000, "34 oz bottle"}),
		volume("vegetable oil", Package{710, "24 oz bottle"}, Package{1420, "48 oz bottle"}),
	})
}

// UK returns the United Kingdom catalog. Milk is sold in imperial pints.
func UK() *Catalog {
	return NewCatalog(MarketUK, []Entry{
		volume("milk", Package{568, "1 pint"}, Package{1136, "2 pints"}, Package{2272, "4 pints"}),
		volume("cream", Package{150, "150 ml"}, Package{300, "300 ml"}, Package{600, "600 ml"}),
		weight("butter", Package{250, "250 g block"}, Package{500, "500 g block"}),
		count("egg", Package{6, "half dozen"}, Package{12, "1 dozen"}, Package{15, "15-pack"}),
		volume("yogurt", Package{150, "150 g pot"}, Package{500, "500 g tub"}, Package{1000, "1 kg tub"}),
		volume("olive oil", Package{500, "500 ml bottle"}, Package{1000, "1 L bottle"}),
	})
}

// EU returns the metric continental European catalog.
func EU() *Catalog {
	return NewCatalog(MarketEU, []Entry{
		volume("milk", Package{500, "500 ml"}, Package{1000, "1 L"}, Package{2000, "2 L"}),
		volume("cream", Package{200, "200 ml"}, Package{500, "500 ml"}),
		weight("butter", Package{125, "125 g"}, Package{250, "250 g"}),
		count("egg", Package{6, "6-pack"}, Package{10, "10-pack"}),
		volume("yogurt", Package{125, "125 g"}, Package{500, "500 g"}, Package{1000, "1 kg"}),
		volume("olive oil", Package{500, "500 ml bottle"}, Package{750, "750 ml bottle"}, Package{1000, "1 L bottle"}),
	})
}
