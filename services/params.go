package services

import "strings"

// CustomParam is one named value from the general parameter sheet.
type CustomParam struct {
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
}

// ParamSet is the parsed general parameter sheet: the well-known cost
// parameters plus every other named value found, kept for display.
type ParamSet struct {
	Costs  CostParams
	Custom map[string]CustomParam
}

// Parameter sheet keys recognized into CostParams. Lowercased for matching.
var paramAliases = map[string]func(*CostParams, float64){
	"internal_rate":           func(c *CostParams, v float64) { c.InternalHourlyRate = v },
	"internal_hourly_rate":    func(c *CostParams, v float64) { c.InternalHourlyRate = v },
	"external_rate":           func(c *CostParams, v float64) { c.ExternalHourlyRate = v },
	"external_hourly_rate":    func(c *CostParams, v float64) { c.ExternalHourlyRate = v },
	"per_diem":                func(c *CostParams, v float64) { c.PerDiemDaily = v },
	"diaria":                  func(c *CostParams, v float64) { c.PerDiemDaily = v },
	"hotel_nightly":           func(c *CostParams, v float64) { c.HotelNightly = v },
	"costo_hotel":             func(c *CostParams, v float64) { c.HotelNightly = v },
	"fuel_price":              func(c *CostParams, v float64) { c.VanRate.FuelPricePerLiter = v },
	"prezzo_carburante":       func(c *CostParams, v float64) { c.VanRate.FuelPricePerLiter = v },
	"km_per_liter":            func(c *CostParams, v float64) { c.VanRate.KmPerLiter = v },
	"consumo_km_litro":        func(c *CostParams, v float64) { c.VanRate.KmPerLiter = v },
	"wear_per_km":             func(c *CostParams, v float64) { c.VanRate.WearCostPerKm = v },
	"usura_km":                func(c *CostParams, v float64) { c.VanRate.WearCostPerKm = v },
	"toll_per_km":             func(c *CostParams, v float64) { c.VanRate.TollCostPerKm = v },
	"pedaggio_km":             func(c *CostParams, v float64) { c.VanRate.TollCostPerKm = v },
	"public_transport_per_km": func(c *CostParams, v float64) { c.PublicTransportPerKm = v },
}

// ApplySetting applies one stored operator setting onto the cost parameters
// and reports whether the key was recognized.
func ApplySetting(costs *CostParams, key string, value float64) bool {
	apply, ok := paramAliases[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return false
	}
	apply(costs, value)
	return true
}

// ParseParamSet reads the general parameter sheet: one "key,value[,description]"
// row per line, no header required. Unknown keys land in Custom; a blank or
// missing sheet yields the documented defaults.
func ParseParamSet(raw string) ParamSet {
	return ParseParamSetWith(DefaultCostParams(), raw)
}

// ParseParamSetWith parses the sheet on top of an explicit base, so stored
// operator settings can sit between the compile-time defaults and the sheet.
func ParseParamSetWith(base CostParams, raw string) ParamSet {
	set := ParamSet{
		Costs:  base,
		Custom: make(map[string]CustomParam),
	}

	lines := nonEmptyLines(raw)
	if len(lines) == 0 {
		return set
	}

	delim := detectDelimiter(lines[0])
	for _, line := range lines {
		fields := splitFields(line, delim)
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSpace(strings.TrimPrefix(fields[0], "\uFEFF"))
		if key == "" {
			continue
		}
		value := ParseNumericCell(fields[1])
		if value == 0 && strings.TrimSpace(fields[1]) != "0" {
			continue
		}

		description := ""
		if len(fields) > 2 {
			description = strings.Join(fields[2:], " ")
		}
		set.Custom[key] = CustomParam{Value: value, Description: description}

		if apply, ok := paramAliases[strings.ToLower(key)]; ok {
			apply(&set.Costs, value)
		}
	}
	return set
}
