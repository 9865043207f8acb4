package services

import "fmt"

// ConfigSet bundles the parsed configuration sources for one session. It is
// built once from fetched sheet text, treated as read-only afterwards, and
// can therefore be shared across concurrent estimate computations.
type ConfigSet struct {
	Models    *ConfigTable
	Logistics *LogisticsTable
	Params    ParamSet
	Discounts []DiscountRule

	// DefaultMarginPercent is applied when a job does not request a margin.
	// It comes from the default_margin operator setting and may be zero.
	DefaultMarginPercent float64
}

// BuildConfigSet parses the four raw sheet texts into an immutable ConfigSet.
// Any blank input degrades to an empty table or to defaults, never an error.
func BuildConfigSet(modelsText, logisticsText, paramsText, discountsText string) ConfigSet {
	return ConfigSet{
		Models:    ParseConfigTable(modelsText, 0),
		Logistics: ParseLogisticsTable(logisticsText),
		Params:    ParseParamSet(paramsText),
		Discounts: ParseDiscountRules(discountsText),
	}
}

// ComputeEstimate runs the full deterministic pipeline for one job: model
// and ballast resolution, labor-hours and material weight, transport
// classification and tariff lookup, then cost aggregation and pricing. The
// computation is a pure function of its inputs.
func ComputeEstimate(spec JobSpecification, cfg ConfigSet) (EstimateResult, error) {
	if err := spec.Validate(); err != nil {
		return EstimateResult{}, fmt.Errorf("invalid job specification: %w", err)
	}

	modelKey, modelRow, modelFound := cfg.Models.Resolve(spec.ModelQuery)

	var ballastRow map[string]float64
	if spec.IncludeBallast && spec.BallastQuery != "" {
		_, ballastRow, _ = cfg.Models.Resolve(spec.BallastQuery)
	}

	hours := InstallationHours(modelRow, spec.Spots, spec.IncludePV, spec.IncludeGaskets, spec.IncludeBallast, ballastRow)
	weight := MaterialWeight(modelRow, spec.Spots, spec.IncludeBallast)

	tariffs, _ := cfg.Logistics.Region(spec.Province)
	transport := ResolveTransport(TransportRequest{
		WeightKg:        weight.TotalKg,
		DistanceKm:      spec.DistanceKm,
		Province:        spec.Province,
		Tariffs:         tariffs,
		TravelByVehicle: spec.TransportMode == TransportCompanyVehicle,
		PickupAtOrigin:  spec.PickupAtOrigin,
		VanRate:         cfg.Params.Costs.VanRate,
	})
	forklift := ForkliftCost(spec.IncludeBallast, spec.HasForklift, transport.Class, spec.DurationDays)

	// A volume discount from the rule sheet applies only when the caller
	// did not set one explicitly, and the configured default margin only
	// fills a zero request.
	if spec.DiscountPercent == 0 {
		spec.DiscountPercent = SelectDiscount(cfg.Discounts, spec.Spots)
	}
	if spec.MarginPercent == 0 {
		spec.MarginPercent = cfg.DefaultMarginPercent
	}

	res := ComputeCosts(spec, cfg.Params.Costs, transport, forklift)
	res.TotalHours = hours.Total
	res.TotalWeightKg = weight.TotalKg
	res.Explanations["ore"] = joinTrace(hours.Trace)
	res.Explanations["peso"] = joinTrace(weight.Trace)
	if !modelFound && spec.ModelQuery != "" {
		res.Explanations["modello"] = fmt.Sprintf("modello %q non trovato nella tabella: ore a 0, peso stimato con valori predefiniti", spec.ModelQuery)
	} else if modelFound {
		res.Explanations["modello"] = "modello risolto: " + modelKey
	}
	return res, nil
}
