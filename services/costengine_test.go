package services

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestHasWeekendOverlap(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  float64
		want  bool
	}{
		{"thursday plus three days hits saturday", "2026-01-08", 3, true},
		{"monday to friday stays clear", "2026-01-05", 5, false},
		{"saturday start", "2026-01-10", 1, true},
		{"friday fractional day rounds into saturday", "2026-01-09", 1.5, true},
		{"zero duration", "2026-01-08", 0, false},
		{"blank date disables the check", "", 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var start time.Time
			if tt.start != "" {
				var err error
				start, err = time.Parse("2006-01-02", tt.start)
				if err != nil {
					t.Fatal(err)
				}
			}
			if got := HasWeekendOverlap(start, tt.days); got != tt.want {
				t.Errorf("HasWeekendOverlap(%s, %v) = %v, want %v", tt.start, tt.days, got, tt.want)
			}
		})
	}
}

func baseSpec() JobSpecification {
	return JobSpecification{
		UseInternalTeam: true,
		InternalTechs:   2,
		TransportMode:   TransportCompanyVehicle,
		StartDate:       "2026-01-05", // Monday
		DurationDays:    2,
		DistanceKm:      100,
		MarginPercent:   30,
	}
}

func TestComputeCosts_InternalLabor(t *testing.T) {
	spec := baseSpec()
	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)

	// 2 techs x 2 days x 8 h x 20 EUR.
	want := 2.0 * 2 * 8 * 20
	if got := res.CategoryTotal(CategoryLabor); got != want {
		t.Errorf("labor total = %v, want %v", got, want)
	}
}

func TestComputeCosts_PresplitHoursWin(t *testing.T) {
	spec := baseSpec()
	spec.InternalHours = 30

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	if got := res.CategoryTotal(CategoryLabor); got != 30*20 {
		t.Errorf("labor total = %v, want %v (explicit hours must override the derivation)", got, 30*20.0)
	}
}

func TestComputeCosts_ExternalAllInclusive(t *testing.T) {
	spec := JobSpecification{
		UseExternalTeam: true,
		ExternalTechs:   3,
		TransportMode:   TransportCompanyVehicle,
		DurationDays:    2,
		DistanceKm:      400,
	}

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)

	want := 3.0 * 2 * 8 * 37
	if got := res.CategoryTotal(CategoryLabor); got != want {
		t.Errorf("external labor = %v, want %v", got, want)
	}
	if got := res.CategoryTotal(CategoryTravel); got != 0 {
		t.Errorf("travel = %v, want 0 for an all-external team", got)
	}
	if got := res.CategoryTotal(CategoryLodging); got != 0 {
		t.Errorf("lodging = %v, want 0 for an all-external team", got)
	}
}

func TestComputeCosts_HotelNights(t *testing.T) {
	tests := []struct {
		name       string
		days       float64
		wantNights float64
	}{
		{"single day job sleeps nowhere", 1, 0},
		{"two days one night", 2, 1},
		{"fractional day rounds up", 2.5, 2},
		{"week long", 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec()
			spec.DurationDays = tt.days

			res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)

			perDiem := 50.0 * tt.days * 2
			hotel := tt.wantNights * 80 * 2
			if got := res.CategoryTotal(CategoryLodging); got != perDiem+hotel {
				t.Errorf("lodging = %v, want %v (per diem %v + hotel %v)", got, perDiem+hotel, perDiem, hotel)
			}
		})
	}
}

func TestComputeCosts_WeekendReturn(t *testing.T) {
	spec := baseSpec()
	spec.StartDate = "2026-01-08" // Thursday
	spec.DurationDays = 5
	spec.ReturnOnWeekends = true
	spec.TravelTimeOneWayHours = 1

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	if !res.WeekendReturnApplied {
		t.Fatal("weekend return not applied for a Thursday start spanning the weekend")
	}

	// 4 nights minus 2 saved, x 80 EUR x 2 techs, plus per diem.
	wantLodging := 50.0*5*2 + 2*80*2
	if got := res.CategoryTotal(CategoryLodging); got != wantLodging {
		t.Errorf("lodging = %v, want %v", got, wantLodging)
	}

	// Without the weekend flag the trips halve and the nights grow.
	spec.ReturnOnWeekends = false
	plain := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	if plain.WeekendReturnApplied {
		t.Error("weekend return applied without the flag")
	}
	if plain.CategoryTotal(CategoryTravel) >= res.CategoryTotal(CategoryTravel) {
		t.Errorf("travel without weekend return (%v) should be below doubled trips (%v)",
			plain.CategoryTotal(CategoryTravel), res.CategoryTotal(CategoryTravel))
	}
}

func TestComputeCosts_PublicTransport(t *testing.T) {
	spec := baseSpec()
	spec.TransportMode = TransportPublic
	spec.DurationDays = 1
	spec.TravelTimeOneWayHours = 2

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)

	ticket := 100 * 0.15 * 2 * 2.0 // km x rate x round trip x 2 techs
	timeCost := 2.0 * 2 * 20 * 2   // hours x round trip x rate x 2 techs
	if got := res.CategoryTotal(CategoryTravel); got != ticket+timeCost {
		t.Errorf("travel = %v, want %v", got, ticket+timeCost)
	}
}

func TestComputeCosts_TollChargedOnce(t *testing.T) {
	spec := baseSpec()
	spec.DurationDays = 1 // no hotel, no shuttle
	spec.DistanceKm = 100

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)

	// 200 km at the running rate plus 200 km of tolls, which together equal
	// 200 km at the full per-km rate. The old double-charge added the toll
	// term a second time on top of the full rate.
	want := 200 * DefaultVanRateParams().PerKm()
	if got := res.CategoryTotal(CategoryTravel); math.Abs(got-want) > 1e-9 {
		t.Errorf("travel = %v, want %v (toll must be billed exactly once)", got, want)
	}
}

func TestComputeCosts_WeekendReturnSkipsShuttle(t *testing.T) {
	// Thursday start, 3 days: 2 hotel nights, both saved by the weekend
	// return, so the local hotel-site trips disappear with them.
	spec := baseSpec()
	spec.StartDate = "2026-01-08"
	spec.DurationDays = 3
	spec.ReturnOnWeekends = true

	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	if !res.WeekendReturnApplied {
		t.Fatal("weekend return not applied")
	}
	for _, item := range res.Items {
		if strings.Contains(item.Description, "hotel-cantiere") {
			t.Errorf("shuttle billed with zero nights stayed: %+v", item)
		}
	}

	// With enough nights left over the shuttle stays.
	spec.DurationDays = 5
	res = ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	var found bool
	for _, item := range res.Items {
		if strings.Contains(item.Description, "hotel-cantiere") {
			found = true
		}
	}
	if !found {
		t.Error("shuttle missing although nights remain after the weekend return")
	}
}

func TestComputeCosts_LogisticsItems(t *testing.T) {
	spec := baseSpec()
	transport := TransportQuote{Class: VehicleCraneTruck, Method: "Camion con gru", Cost: 480}

	res := ComputeCosts(spec, DefaultCostParams(), transport, 700)
	if got := res.CategoryTotal(CategoryLogistics); got != 1180 {
		t.Errorf("logistics = %v, want 1180", got)
	}
	if res.VehicleClass != VehicleCraneTruck {
		t.Errorf("vehicle class = %q, want crane truck", res.VehicleClass)
	}
}

func TestComputeCosts_NoNegativeItems(t *testing.T) {
	spec := baseSpec()
	spec.DurationDays = 0.5
	res := ComputeCosts(spec, DefaultCostParams(), TransportQuote{Class: VehicleVan}, 0)
	for _, item := range res.Items {
		if item.Amount < 0 {
			t.Errorf("negative cost item %q: %v", item.Description, item.Amount)
		}
	}
}

func TestApplyPricing(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		margin    float64
		discount  float64
		wantSales float64
	}{
		{"no margin no discount", 1000, 0, 0, 1000},
		{"thirty percent margin", 700, 30, 0, 1000},
		{"margin clamped at 99", 100, 150, 0, 100 / 0.01},
		{"negative margin clamped to zero", 1000, -20, 0, 1000},
		{"discount on gross", 700, 30, 10, 900},
		{"discount clamped at 100", 500, 0, 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sales, marginAmount := applyPricing(tt.total, tt.margin, tt.discount)
			if math.Abs(sales-tt.wantSales) > 1e-9 {
				t.Errorf("salesPrice = %v, want %v", sales, tt.wantSales)
			}
			if math.Abs(marginAmount-(sales-tt.total)) > 1e-9 {
				t.Errorf("marginAmount = %v, want salesPrice - totalCost = %v", marginAmount, sales-tt.total)
			}
		})
	}
}

func TestApplyPricing_MarginInvariant(t *testing.T) {
	// Without a discount, margin/salesPrice must equal the requested fraction.
	for _, margin := range []float64{5, 20, 30, 50, 80} {
		sales, marginAmount := applyPricing(1234.56, margin, 0)
		got := marginAmount / sales
		if math.Abs(got-margin/100) > 1e-9 {
			t.Errorf("margin %v%%: marginAmount/salesPrice = %v, want %v", margin, got, margin/100)
		}
	}
}

func TestComputeCosts_Idempotent(t *testing.T) {
	spec := baseSpec()
	spec.TravelTimeOneWayHours = 1.5
	transport := TransportQuote{Class: VehicleCraneTruck, Method: "Camion con gru", Cost: 480}

	a := ComputeCosts(spec, DefaultCostParams(), transport, 700)
	b := ComputeCosts(spec, DefaultCostParams(), transport, 700)
	if a.TotalCost != b.TotalCost || a.SalesPrice != b.SalesPrice || len(a.Items) != len(b.Items) {
		t.Errorf("repeated computation diverged: %v vs %v", a.TotalCost, b.TotalCost)
	}
}
