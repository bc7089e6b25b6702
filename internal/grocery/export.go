package grocery

import "strings"

// Measurement is one amount in an export record.
type Measurement struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ExportItem is the flattened record handed to shopping and ordering
// integrations.
type ExportItem struct {
	Name              string        `json:"name"`
	DisplayText       string        `json:"display_text"`
	Measurements      []Measurement `json:"measurements"`
	SuggestedPackage  string        `json:"suggested_package,omitempty"`
	SuggestedQuantity int           `json:"suggested_quantity,omitempty"`
}

// Export flattens line items for an ordering integration. Measurements are
// only listed for items with a non-zero quantity and a unit, and a suggested
// quantity only when more than one package is needed.
func Export(items []LineItem) []ExportItem {
	out := make([]ExportItem, 0, len(items))
	for _, item := range items {
		e := ExportItem{
			Name:         strings.ToLower(item.Name),
			DisplayText:  item.Name,
			Measurements: []Measurement{},
		}
		if item.Quantity != nil && *item.Quantity != 0 && item.Unit != "" {
			e.Measurements = append(e.Measurements, Measurement{
				Quantity: *item.Quantity,
				Unit:     string(item.Unit),
			})
		}
		if item.RetailPackage != "" {
			e.SuggestedPackage = item.RetailPackage
			if item.RetailPackageCount > 1 {
				e.SuggestedQuantity = item.RetailPackageCount
			}
		}
		out = append(out, e)
	}
	return out
}
