package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Column synonym lists for the model sheet. Siblings exist because the sheet
// headers have been renamed across revisions; first non-zero value wins.
var (
	baseHoursColumns    = []string{"ORE_INSTALLAZIONE_1PA", "ORE_1PA", "ORE_INSTALLAZIONE"}
	pvHoursColumns      = []string{"ORE_INSTALLAZIONE_1PA_PF", "ORE_PV_1PA"}
	gasketHoursColumns  = []string{"ORE_INSTALLAZIONE_1PA_PF_GUARNIZIONI", "ORE_GUARNIZIONI_1PA"}
	ballastHoursColumns = []string{"ORE_INSTALLAZIONE_ZAVORRE", "ORE_ZAVORRE"}

	weightFallbackColumns = []string{"PESO_1PA_KG", "PESO_KG", "PESO", "KG"}
)

const (
	// DefaultSpotWeightKg is used when no weight column resolves on the
	// model row.
	DefaultSpotWeightKg = 200.0
	// BallastUnitWeightKg is the weight of one counterweight block.
	BallastUnitWeightKg = 800.0
)

// BallastCount returns the number of counterweight blocks required for a
// spot count. The formula is a fixed business rule, not sheet data:
// one block per pair of spots, plus one closing block.
func BallastCount(spots int) int {
	if spots <= 0 {
		return 0
	}
	return (spots+1)/2 + 1
}

// HoursResult is the labor-hours derivation for one job.
type HoursResult struct {
	Total float64
	Trace []string
}

// InstallationHours computes total labor-hours for a resolved model row.
// Per-spot hours are base plus the selected add-ons; ballast time is billed
// per pair of blocks, read from the ballast row when available and from the
// model row otherwise. A nil row or non-positive spot count yields 0 hours.
func InstallationHours(modelRow map[string]float64, spots int, includePV, includeGaskets, includeBallast bool, ballastRow map[string]float64) HoursResult {
	var res HoursResult
	if modelRow == nil || spots <= 0 {
		res.Trace = append(res.Trace, "nessun modello risolto o posti <= 0: ore = 0")
		return res
	}

	base := NumericField(modelRow, baseHoursColumns...)
	res.Trace = append(res.Trace, fmt.Sprintf("ore base per posto: %.2f", base))

	perSpot := base
	if includePV {
		pv := NumericField(modelRow, pvHoursColumns...)
		perSpot += pv
		res.Trace = append(res.Trace, fmt.Sprintf("fotovoltaico: +%.2f ore/posto", pv))
	}
	if includeGaskets {
		g := NumericField(modelRow, gasketHoursColumns...)
		perSpot += g
		res.Trace = append(res.Trace, fmt.Sprintf("guarnizioni: +%.2f ore/posto", g))
	}

	var ballastHours float64
	if includeBallast {
		perPair := NumericField(ballastRow, ballastHoursColumns...)
		source := "riga zavorra"
		if perPair == 0 {
			perPair = NumericField(modelRow, ballastHoursColumns...)
			source = "riga modello"
		}
		count := BallastCount(spots)
		pairs := (count + 1) / 2
		ballastHours = float64(pairs) * perPair
		res.Trace = append(res.Trace, fmt.Sprintf("zavorre: %d blocchi, %d coppie x %.2f ore (%s) = %.2f ore", count, pairs, perPair, source, ballastHours))
	}

	res.Total = round2(float64(spots)*perSpot + ballastHours)
	res.Trace = append(res.Trace, fmt.Sprintf("totale: %d posti x %.2f + %.2f = %.2f ore", spots, perSpot, ballastHours, res.Total))
	return res
}

// WeightResult is the material-weight derivation for one job.
type WeightResult struct {
	TotalKg     float64
	StructureKg float64
	BallastKg   float64
	Trace       []string
}

// MaterialWeight computes the total material weight to ship. The per-spot
// structure weight is found by a prioritized column search: first a column
// naming both a weight marker and one spot, then a structure weight column,
// then a short list of exact fallbacks, and finally a constant default so an
// incomplete sheet still yields a usable estimate.
func MaterialWeight(modelRow map[string]float64, spots int, includeBallast bool) WeightResult {
	var res WeightResult
	if spots <= 0 {
		res.Trace = append(res.Trace, "posti <= 0: peso = 0")
		return res
	}

	perSpot, source := perSpotWeight(modelRow)
	res.StructureKg = float64(spots) * perSpot
	res.Trace = append(res.Trace, fmt.Sprintf("struttura: %d posti x %.0f kg (%s) = %.0f kg", spots, perSpot, source, res.StructureKg))

	if includeBallast {
		count := BallastCount(spots)
		res.BallastKg = float64(count) * BallastUnitWeightKg
		res.Trace = append(res.Trace, fmt.Sprintf("zavorre: %d blocchi x %.0f kg = %.0f kg", count, BallastUnitWeightKg, res.BallastKg))
	}

	res.TotalKg = res.StructureKg + res.BallastKg
	res.Trace = append(res.Trace, fmt.Sprintf("peso totale: %.0f kg", res.TotalKg))
	return res
}

// perSpotWeight resolves the structure weight of one spot and reports where
// the value came from so the trace can flag estimated data. Columns are
// scanned in sorted order to keep the result deterministic.
func perSpotWeight(row map[string]float64) (float64, string) {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		if row[col] > 0 && hasWeightMarker(col) && hasOneSpotMarker(col) {
			return row[col], "colonna " + col
		}
	}
	for _, col := range cols {
		if row[col] > 0 && hasWeightMarker(col) && strings.Contains(col, "STRUTTURA") {
			return row[col], "colonna " + col
		}
	}
	if v := NumericField(row, weightFallbackColumns...); v > 0 {
		return v, "colonna di riserva"
	}
	return DefaultSpotWeightKg, "valore predefinito"
}

func hasWeightMarker(col string) bool {
	return strings.Contains(col, "PESO") || strings.Contains(col, "KG")
}

func hasOneSpotMarker(col string) bool {
	return strings.Contains(col, "1PA") || strings.Contains(col, "1_PA") || strings.Contains(col, "POSTO")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
