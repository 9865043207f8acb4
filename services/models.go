package services

import "strings"

// ModelOption is one selectable structure model, derived from the loaded
// configuration table: the row key is both the identifier and the display
// name, so resolution back into the table is exact.
type ModelOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	AllowsPV      bool   `json:"allowsPV"`
	AllowsGaskets bool   `json:"allowsGaskets"`
	RequiresCrane bool   `json:"requiresCrane"`
}

// Known model families for categorization; sheet rows that match none of
// these fall into the generic category.
var modelCategories = []struct {
	marker   string
	category string
	crane    bool
}{
	{"centaurocorporate", "Corporate", true},
	{"solarflextruck", "Automotive", false},
	{"solarflexcamper", "Automotive", false},
	{"solarflex", "Solarflex", false},
}

// ModelCatalog derives the selectable model list from the configuration
// table. Capabilities are inferred from column presence: a positive add-on
// hours column means the option is available for that model.
func ModelCatalog(table *ConfigTable) []ModelOption {
	if table == nil {
		return nil
	}
	var options []ModelOption
	for _, key := range table.Keys() {
		row, _ := table.Row(key)
		// Ballast rows live in the same sheet but are not models.
		if strings.Contains(NormalizeKey(key), "zavorra") {
			continue
		}

		opt := ModelOption{
			ID:            key,
			Name:          key,
			Category:      "Generale",
			AllowsPV:      NumericField(row, pvHoursColumns...) > 0,
			AllowsGaskets: NumericField(row, gasketHoursColumns...) > 0,
		}
		norm := NormalizeKey(key)
		for _, mc := range modelCategories {
			if strings.Contains(norm, mc.marker) {
				opt.Category = mc.category
				opt.RequiresCrane = mc.crane
				break
			}
		}
		options = append(options, opt)
	}
	return options
}
