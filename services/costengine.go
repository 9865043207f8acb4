package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// CostParams are the company cost constants applied by the pricing engine.
// They are seeded with defaults and can be overridden from the parameter
// sheet; a zero field always means "use the default".
type CostParams struct {
	InternalHourlyRate   float64
	ExternalHourlyRate   float64
	HoursPerDay          float64
	PerDiemDaily         float64
	HotelNightly         float64
	WeekendNightsSaved   float64
	PublicTransportPerKm float64
	LocalShuttleKmPerDay float64
	VanRate              VanRateParams
}

// DefaultCostParams returns the documented company defaults.
func DefaultCostParams() CostParams {
	return CostParams{
		InternalHourlyRate:   20,
		ExternalHourlyRate:   37,
		HoursPerDay:          8,
		PerDiemDaily:         50,
		HotelNightly:         80,
		WeekendNightsSaved:   2,
		PublicTransportPerKm: 0.15,
		LocalShuttleKmPerDay: 60, // hotel <-> site, 15 km x 4 legs
		VanRate:              DefaultVanRateParams(),
	}
}

// withDefaults fills zero fields from the defaults.
func (p CostParams) withDefaults() CostParams {
	d := DefaultCostParams()
	if p.InternalHourlyRate == 0 {
		p.InternalHourlyRate = d.InternalHourlyRate
	}
	if p.ExternalHourlyRate == 0 {
		p.ExternalHourlyRate = d.ExternalHourlyRate
	}
	if p.HoursPerDay == 0 {
		p.HoursPerDay = d.HoursPerDay
	}
	if p.PerDiemDaily == 0 {
		p.PerDiemDaily = d.PerDiemDaily
	}
	if p.HotelNightly == 0 {
		p.HotelNightly = d.HotelNightly
	}
	if p.WeekendNightsSaved == 0 {
		p.WeekendNightsSaved = d.WeekendNightsSaved
	}
	if p.PublicTransportPerKm == 0 {
		p.PublicTransportPerKm = d.PublicTransportPerKm
	}
	if p.LocalShuttleKmPerDay == 0 {
		p.LocalShuttleKmPerDay = d.LocalShuttleKmPerDay
	}
	return p
}

// HasWeekendOverlap reports whether the window [start, start+ceil(days))
// contains a Saturday or Sunday. A zero start disables the check.
func HasWeekendOverlap(start time.Time, durationDays float64) bool {
	if start.IsZero() || durationDays <= 0 {
		return false
	}
	n := int(math.Ceil(durationDays))
	for i := 0; i < n; i++ {
		wd := start.AddDate(0, 0, i).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	return false
}

// ComputeCosts aggregates every cost category for one scenario and derives
// the sales price. The transport quote and forklift cost come from the
// logistics resolver; labor, travel and lodging are computed here.
//
// External technicians are billed all-inclusive: no travel, lodging or
// per-diem is ever computed for the external team.
func ComputeCosts(spec JobSpecification, params CostParams, transport TransportQuote, forkliftCost float64) EstimateResult {
	params = params.withDefaults()

	res := EstimateResult{
		VehicleClass:       transport.Class,
		LogisticsMethod:    transport.Method,
		LogisticsEstimated: transport.Estimated,
		DiscountPercent:    spec.DiscountPercent,
		Explanations:       make(map[string]string),
	}

	internalTechs := spec.ActiveInternalTechs()
	externalTechs := spec.ActiveExternalTechs()
	days := spec.DurationDays

	weekendReturn := spec.ReturnOnWeekends && HasWeekendOverlap(spec.Start(), days)
	res.WeekendReturnApplied = weekendReturn
	tripMultiplier := 1.0
	if weekendReturn {
		tripMultiplier = 2
	}

	// Labor.
	if internalTechs > 0 {
		hours := spec.InternalHours
		if hours == 0 {
			hours = days * params.HoursPerDay * float64(internalTechs)
		}
		res.Items = append(res.Items, CostItem{
			Category:    CategoryLabor,
			Description: fmt.Sprintf("%d tecnici interni x %.1f ore x %.2f EUR/ora", internalTechs, hours/float64(internalTechs), params.InternalHourlyRate),
			Amount:      hours * params.InternalHourlyRate,
		})
	}
	if externalTechs > 0 {
		hours := spec.ExternalHours
		if hours == 0 {
			hours = days * params.HoursPerDay * float64(externalTechs)
		}
		res.Items = append(res.Items, CostItem{
			Category:    CategoryLabor,
			Description: fmt.Sprintf("%d tecnici esterni x %.1f ore x %.2f EUR/ora (tutto incluso)", externalTechs, hours/float64(externalTechs), params.ExternalHourlyRate),
			Amount:      hours * params.ExternalHourlyRate,
		})
	}

	// Travel and lodging apply to the internal team only.
	if internalTechs > 0 {
		res.Items = append(res.Items, travelItems(spec, params, tripMultiplier, internalTechs, weekendReturn)...)
		res.Items = append(res.Items, lodgingItems(spec, params, weekendReturn, internalTechs)...)
	}

	// Logistics.
	if transport.Cost > 0 {
		res.Items = append(res.Items, CostItem{
			Category:    CategoryLogistics,
			Description: "Trasporto materiale: " + transport.Method,
			Amount:      transport.Cost,
		})
	}
	if forkliftCost > 0 {
		res.Items = append(res.Items, CostItem{
			Category:    CategoryLogistics,
			Description: "Noleggio muletto per scarico zavorre",
			Amount:      forkliftCost,
		})
	}

	for _, item := range res.Items {
		res.TotalCost += item.Amount
	}

	res.SalesPrice, res.MarginAmount = applyPricing(res.TotalCost, spec.MarginPercent, spec.DiscountPercent)

	res.Explanations["trasporto"] = joinTrace(transport.Trace)
	if weekendReturn {
		res.Explanations["viaggio"] = "rientro nel fine settimana applicato: viaggi raddoppiati, notti di hotel ridotte"
	}
	return res
}

// travelItems prices the internal team's trip to the site. A weekend return
// doubles the round trips; public transport bills the ticket per person and
// the travel time once.
func travelItems(spec JobSpecification, params CostParams, tripMultiplier float64, techs int, weekendReturn bool) []CostItem {
	var items []CostItem
	dist := spec.DistanceKm

	if spec.TransportMode == TransportPublic {
		ticket := dist * params.PublicTransportPerKm * 2 * float64(techs) * tripMultiplier
		items = append(items, CostItem{
			Category:    CategoryTravel,
			Description: fmt.Sprintf("Biglietti mezzi pubblici A/R x %d persone", techs),
			Amount:      ticket,
		})
		timeCost := spec.TravelTimeOneWayHours * 2 * tripMultiplier * params.InternalHourlyRate * float64(techs)
		if timeCost > 0 {
			items = append(items, CostItem{
				Category:    CategoryTravel,
				Description: "Ore di viaggio squadra interna",
				Amount:      timeCost,
			})
		}
		return items
	}

	// Company vehicle: running km cost plus the highway toll estimate, each
	// billed once, plus paid driving time.
	runningPerKm := params.VanRate.RunningCostPerKm()
	tollPerKm := params.VanRate.withDefaults().TollCostPerKm
	totalKm := dist * 2 * tripMultiplier
	items = append(items, CostItem{
		Category:    CategoryTravel,
		Description: fmt.Sprintf("Veicolo aziendale: %.0f km x %.3f EUR/km + pedaggi", totalKm, runningPerKm),
		Amount:      totalKm*runningPerKm + totalKm*tollPerKm,
	})

	driving := spec.TravelTimeOneWayHours * 2 * tripMultiplier * params.InternalHourlyRate * float64(techs)
	if driving > 0 {
		items = append(items, CostItem{
			Category:    CategoryTravel,
			Description: "Ore di guida squadra interna",
			Amount:      driving,
		})
	}

	// Hotel <-> site shuttle, only when nights are actually stayed: a
	// weekend return that sends everyone home also removes the local trips.
	if hotelNights(spec.DurationDays, weekendReturn, params) > 0 {
		shuttle := params.LocalShuttleKmPerDay * spec.DurationDays * runningPerKm
		items = append(items, CostItem{
			Category:    CategoryTravel,
			Description: "Spostamenti locali hotel-cantiere",
			Amount:      shuttle,
		})
	}
	return items
}

// lodgingItems prices per-diem and hotel nights for the internal team. A
// weekend return sends the technicians home, saving hotel nights.
func lodgingItems(spec JobSpecification, params CostParams, weekendReturn bool, techs int) []CostItem {
	var items []CostItem
	days := spec.DurationDays

	perDiem := params.PerDiemDaily * days * float64(techs)
	items = append(items, CostItem{
		Category:    CategoryLodging,
		Description: fmt.Sprintf("Diaria %.0f EUR/giorno x %.1f giorni x %d tecnici", params.PerDiemDaily, days, techs),
		Amount:      perDiem,
	})

	nights := hotelNights(days, weekendReturn, params)
	if nights > 0 {
		items = append(items, CostItem{
			Category:    CategoryLodging,
			Description: fmt.Sprintf("Hotel %.0f notti x %.0f EUR x %d tecnici", nights, params.HotelNightly, techs),
			Amount:      nights * params.HotelNightly * float64(techs),
		})
	}
	return items
}

// hotelNights is ceil(days)-1, floored at zero, minus the nights saved by a
// weekend return.
func hotelNights(durationDays float64, weekendReturn bool, params CostParams) float64 {
	nights := math.Max(0, math.Ceil(durationDays)-1)
	if weekendReturn {
		nights = math.Max(0, nights-params.WeekendNightsSaved)
	}
	return nights
}

// applyPricing derives the sales price from the total cost. The margin is a
// fraction of the sales price, not a markup on cost, and the volume discount
// applies to the gross price: the reported margin amount is recomputed after
// the discount, so a discount always reduces realized margin.
func applyPricing(totalCost, marginPercent, discountPercent float64) (salesPrice, marginAmount float64) {
	margin := marginPercent / 100
	if margin < 0 {
		margin = 0
	}
	if margin > 0.99 {
		margin = 0.99
	}
	gross := totalCost / (1 - margin)

	discount := discountPercent / 100
	if discount < 0 {
		discount = 0
	}
	if discount > 1 {
		discount = 1
	}
	salesPrice = gross * (1 - discount)
	marginAmount = salesPrice - totalCost
	return salesPrice, marginAmount
}

func joinTrace(trace []string) string {
	return strings.Join(trace, "; ")
}
