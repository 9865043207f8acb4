package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// VehicleClass is the transport method selected from the material weight.
type VehicleClass string

const (
	VehicleVan        VehicleClass = "furgone"
	VehicleCraneTruck VehicleClass = "camion_gru"
	VehicleFlatbed    VehicleClass = "bilico"
)

// Weight bands, kg. The lowest band whose ceiling is not exceeded wins.
const (
	VanMaxWeightKg        = 1000.0
	CraneTruckMaxWeightKg = 16000.0
	FlatbedMaxWeightKg    = 24000.0
)

// VanRateParams derives the per-kilometer cost of the company van. Each term
// is independently configurable; zero values fall back to the defaults below.
type VanRateParams struct {
	FuelPricePerLiter float64 // default 1.85 EUR/l
	KmPerLiter        float64 // default 12 km/l
	WearCostPerKm     float64 // default 0.15 EUR/km
	TollCostPerKm     float64 // default 0.10 EUR/km
}

// DefaultVanRateParams are the company cost constants used when the
// parameter sheet does not override them.
func DefaultVanRateParams() VanRateParams {
	return VanRateParams{
		FuelPricePerLiter: 1.85,
		KmPerLiter:        12,
		WearCostPerKm:     0.15,
		TollCostPerKm:     0.10,
	}
}

// withDefaults fills zero fields from the defaults.
func (p VanRateParams) withDefaults() VanRateParams {
	d := DefaultVanRateParams()
	if p.FuelPricePerLiter == 0 {
		p.FuelPricePerLiter = d.FuelPricePerLiter
	}
	if p.KmPerLiter == 0 {
		p.KmPerLiter = d.KmPerLiter
	}
	if p.WearCostPerKm == 0 {
		p.WearCostPerKm = d.WearCostPerKm
	}
	if p.TollCostPerKm == 0 {
		p.TollCostPerKm = d.TollCostPerKm
	}
	return p
}

// PerKm returns fuel + wear + toll cost for one kilometer.
func (p VanRateParams) PerKm() float64 {
	p = p.withDefaults()
	return p.FuelPricePerLiter/p.KmPerLiter + p.WearCostPerKm + p.TollCostPerKm
}

// RunningCostPerKm returns fuel + wear for one kilometer, without the
// highway toll estimate. Callers that bill tolls as their own term use this
// rate so the toll is never charged twice.
func (p VanRateParams) RunningCostPerKm() float64 {
	p = p.withDefaults()
	return p.FuelPricePerLiter/p.KmPerLiter + p.WearCostPerKm
}

// Per-kilometer fallback rates and floors used when the tariff table has no
// usable entry for the destination province.
const (
	craneTruckPerKmRate  = 1.5
	craneTruckMinCharge  = 300.0
	flatbedPerKmRate     = 2.2
	flatbedMinCharge     = 450.0
	forkliftFlatFee      = 700.0
	forkliftIncludedDays = 5
	forkliftExtraPerDay  = 120.0
)

// Tariff keyword phrases per band, most specific first. Generic phrases sit
// last so "CAMION CON GRU E SCARICO" beats a bare "CAMION" column.
var (
	craneTruckKeywords = []string{
		"CAMION CON GRU E SCARICO",
		"CAMION CON GRU",
		"CAMION GRU",
		"GRU",
		"CAMION",
	}
	flatbedKeywords = []string{
		"BILICO CON GRU",
		"BILICO",
		"AUTOARTICOLATO",
		"CAMION",
		"GRU",
	}
)

// ClassifyVehicle selects the transport method for a material weight.
func ClassifyVehicle(weightKg float64) VehicleClass {
	switch {
	case weightKg <= VanMaxWeightKg:
		return VehicleVan
	case weightKg <= CraneTruckMaxWeightKg:
		return VehicleCraneTruck
	default:
		return VehicleFlatbed
	}
}

// TransportRequest carries everything the logistics resolver needs.
type TransportRequest struct {
	WeightKg        float64
	DistanceKm      float64
	Province        string
	Tariffs         map[string]float64 // destination province row, may be nil
	TravelByVehicle bool               // internal team already drives to site
	PickupAtOrigin  bool               // customer collects, no delivery
	VanRate         VanRateParams
}

// TransportQuote is the resolved transport method and cost. Estimated marks
// a per-kilometer fallback as opposed to a cost read from the tariff table,
// so a reviewer can spot missing configuration.
type TransportQuote struct {
	Class     VehicleClass
	Method    string
	Cost      float64
	Estimated bool
	Trace     []string
}

// ResolveTransport classifies the vehicle from the weight and prices it:
// the van travels free when the technicians already drive, heavier bands are
// looked up in the province tariff row by prioritized keyword search, and a
// missing row or match degrades to a per-kilometer estimate with a minimum
// charge. A pickup at origin discards any computed cost.
func ResolveTransport(req TransportRequest) TransportQuote {
	q := TransportQuote{Class: ClassifyVehicle(req.WeightKg)}
	q.Trace = append(q.Trace, fmt.Sprintf("peso materiale %.0f kg -> mezzo: %s", req.WeightKg, q.Class))

	switch q.Class {
	case VehicleVan:
		q.Method = "Furgone aziendale"
		if req.TravelByVehicle {
			q.Cost = 0
			q.Trace = append(q.Trace, "materiale a bordo del veicolo della squadra: costo 0")
		} else {
			q.Cost = 2 * req.DistanceKm * req.VanRate.PerKm()
			q.Estimated = true
			q.Trace = append(q.Trace, fmt.Sprintf("viaggio dedicato furgone: 2 x %.0f km x %.3f EUR/km = %.2f EUR", req.DistanceKm, req.VanRate.PerKm(), q.Cost))
		}
	case VehicleCraneTruck:
		q.resolveTariff(req, craneTruckKeywords, craneTruckPerKmRate, craneTruckMinCharge, "Camion con gru")
	case VehicleFlatbed:
		q.resolveTariff(req, flatbedKeywords, flatbedPerKmRate, flatbedMinCharge, "Bilico")
	}

	if req.PickupAtOrigin {
		q.Cost = 0
		q.Trace = append(q.Trace, "ritiro presso sede: costo trasporto azzerato")
	}
	return q
}

// resolveTariff prices a heavy band from the province tariff row, falling
// back to a distance-based estimate when no label matches.
func (q *TransportQuote) resolveTariff(req TransportRequest, keywords []string, perKm, minCharge float64, methodName string) {
	if label, cost, ok := findTariff(req.Tariffs, keywords); ok {
		q.Method = methodName + " (" + label + ")"
		q.Cost = cost
		q.Trace = append(q.Trace, fmt.Sprintf("tariffa da tabella %s, voce %q: %.2f EUR", req.Province, label, cost))
		return
	}

	q.Cost = req.DistanceKm * perKm
	if q.Cost < minCharge {
		q.Cost = minCharge
	}
	q.Method = methodName + " (stima)"
	q.Estimated = true
	q.Trace = append(q.Trace, fmt.Sprintf("nessuna tariffa per %s: stima %.0f km x %.2f EUR/km, minimo %.0f EUR = %.2f EUR", req.Province, req.DistanceKm, perKm, minCharge, q.Cost))
}

// findTariff searches the tariff row with the prioritized keyword phrases.
// Each phrase is tried as a literal substring first and then against the
// symbol-stripped forms; the first label with a positive cost wins.
func findTariff(tariffs map[string]float64, keywords []string) (string, float64, bool) {
	if len(tariffs) == 0 {
		return "", 0, false
	}
	labels := make([]string, 0, len(tariffs))
	for label := range tariffs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, kw := range keywords {
		upper := strings.ToUpper(kw)
		for _, label := range labels {
			if strings.Contains(strings.ToUpper(label), upper) && tariffs[label] > 0 {
				return label, tariffs[label], true
			}
		}
		loose := NormalizeKey(kw)
		for _, label := range labels {
			if strings.Contains(NormalizeKey(label), loose) && tariffs[label] > 0 {
				return label, tariffs[label], true
			}
		}
	}
	return "", 0, false
}

// ForkliftCost prices the forklift rental: required whenever ballast blocks
// must be unloaded at a site without a forklift, unless a crane truck
// delivers (the crane unloads itself). Flat fee up to a fixed number of
// days, then a per-day increment.
func ForkliftCost(includeBallast, hasForklift bool, class VehicleClass, durationDays float64) float64 {
	if !includeBallast || hasForklift || class == VehicleCraneTruck {
		return 0
	}
	cost := forkliftFlatFee
	if durationDays > forkliftIncludedDays {
		extra := math.Ceil(durationDays) - forkliftIncludedDays
		cost += extra * forkliftExtraPerDay
	}
	return cost
}
