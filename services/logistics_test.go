package services

import (
	"strings"
	"testing"
)

func TestClassifyVehicle(t *testing.T) {
	tests := []struct {
		weightKg float64
		want     VehicleClass
	}{
		{0, VehicleVan},
		{500, VehicleVan},
		{1000, VehicleVan},
		{1001, VehicleCraneTruck},
		{5000, VehicleCraneTruck},
		{16000, VehicleCraneTruck},
		{16001, VehicleFlatbed},
		{30000, VehicleFlatbed},
	}

	for _, tt := range tests {
		if got := ClassifyVehicle(tt.weightKg); got != tt.want {
			t.Errorf("ClassifyVehicle(%v) = %q, want %q", tt.weightKg, got, tt.want)
		}
	}
}

func TestVanRateParams_PerKm(t *testing.T) {
	d := DefaultVanRateParams()
	want := 1.85/12 + 0.15 + 0.10
	if got := d.PerKm(); got != want {
		t.Errorf("default PerKm() = %v, want %v", got, want)
	}

	// Zero fields fall back to defaults individually.
	partial := VanRateParams{FuelPricePerLiter: 2.40}
	want = 2.40/12 + 0.15 + 0.10
	if got := partial.PerKm(); got != want {
		t.Errorf("partial PerKm() = %v, want %v", got, want)
	}
}

func TestVanRateParams_RunningCostPerKm(t *testing.T) {
	d := DefaultVanRateParams()
	want := 1.85/12 + 0.15
	if got := d.RunningCostPerKm(); got != want {
		t.Errorf("RunningCostPerKm() = %v, want %v", got, want)
	}
	if got := d.RunningCostPerKm() + d.TollCostPerKm; got != d.PerKm() {
		t.Errorf("running + toll = %v, want PerKm() = %v", got, d.PerKm())
	}
}

func TestResolveTransport_Van(t *testing.T) {
	req := TransportRequest{
		WeightKg:        500,
		DistanceKm:      100,
		TravelByVehicle: true,
		VanRate:         DefaultVanRateParams(),
	}

	q := ResolveTransport(req)
	if q.Class != VehicleVan {
		t.Fatalf("class = %q, want van", q.Class)
	}
	if q.Cost != 0 {
		t.Errorf("cost = %v, want 0 when the team already drives", q.Cost)
	}
	if q.Estimated {
		t.Error("a free van ride is not an estimate")
	}

	req.TravelByVehicle = false
	q = ResolveTransport(req)
	want := 2 * 100 * DefaultVanRateParams().PerKm()
	if q.Cost != want {
		t.Errorf("dedicated trip cost = %v, want %v", q.Cost, want)
	}
	if !q.Estimated {
		t.Error("dedicated van trip must be flagged as estimated")
	}
}

func TestResolveTransport_CraneTruckTariff(t *testing.T) {
	req := TransportRequest{
		WeightKg:   5000,
		DistanceKm: 150,
		Province:   "VR",
		Tariffs: map[string]float64{
			"CAMION_GRU": 480,
			"BILICO":     900,
		},
	}

	q := ResolveTransport(req)
	if q.Class != VehicleCraneTruck {
		t.Fatalf("class = %q, want crane truck", q.Class)
	}
	if q.Cost != 480 {
		t.Errorf("cost = %v, want 480 from the tariff table", q.Cost)
	}
	if q.Estimated {
		t.Error("a tabulated tariff must not be flagged as estimated")
	}
	if !strings.Contains(q.Method, "CAMION_GRU") {
		t.Errorf("method %q does not name the matched tariff label", q.Method)
	}
}

func TestResolveTransport_SpecificLabelBeatsGeneric(t *testing.T) {
	req := TransportRequest{
		WeightKg: 5000,
		Tariffs: map[string]float64{
			"CAMION":                   350,
			"CAMION CON GRU E SCARICO": 520,
		},
	}

	q := ResolveTransport(req)
	if q.Cost != 520 {
		t.Errorf("cost = %v, want 520 (most specific phrase first)", q.Cost)
	}
}

func TestResolveTransport_ZeroTariffSkipped(t *testing.T) {
	req := TransportRequest{
		WeightKg: 5000,
		Tariffs: map[string]float64{
			"CAMION_GRU": 0,
			"CAMION":     350,
		},
	}

	q := ResolveTransport(req)
	if q.Cost != 350 {
		t.Errorf("cost = %v, want 350 (zero tariff cells are not usable)", q.Cost)
	}
}

func TestResolveTransport_FallbackEstimate(t *testing.T) {
	tests := []struct {
		name       string
		weightKg   float64
		distanceKm float64
		wantCost   float64
	}{
		{"crane truck per km", 5000, 400, 600},
		{"crane truck minimum charge", 5000, 100, 300},
		{"flatbed per km", 20000, 400, 880},
		{"flatbed minimum charge", 20000, 100, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ResolveTransport(TransportRequest{
				WeightKg:   tt.weightKg,
				DistanceKm: tt.distanceKm,
			})
			if q.Cost != tt.wantCost {
				t.Errorf("cost = %v, want %v", q.Cost, tt.wantCost)
			}
			if !q.Estimated {
				t.Error("fallback pricing must be flagged as estimated")
			}
		})
	}
}

func TestResolveTransport_PickupAtOrigin(t *testing.T) {
	q := ResolveTransport(TransportRequest{
		WeightKg:       5000,
		DistanceKm:     300,
		PickupAtOrigin: true,
	})
	if q.Cost != 0 {
		t.Errorf("cost = %v, want 0 on pickup at origin", q.Cost)
	}
	if q.Class != VehicleCraneTruck {
		t.Errorf("class = %q, classification must survive the pickup override", q.Class)
	}
}

func TestForkliftCost(t *testing.T) {
	tests := []struct {
		name         string
		ballast      bool
		hasForklift  bool
		class        VehicleClass
		durationDays float64
		want         float64
	}{
		{"no ballast", false, false, VehicleVan, 3, 0},
		{"site has forklift", true, true, VehicleVan, 3, 0},
		{"crane truck unloads itself", true, false, VehicleCraneTruck, 3, 0},
		{"flat fee within included days", true, false, VehicleVan, 5, 700},
		{"one extra day", true, false, VehicleVan, 6, 820},
		{"fractional day rounds up", true, false, VehicleFlatbed, 6.5, 940},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForkliftCost(tt.ballast, tt.hasForklift, tt.class, tt.durationDays)
			if got != tt.want {
				t.Errorf("ForkliftCost(%v, %v, %q, %v) = %v, want %v",
					tt.ballast, tt.hasForklift, tt.class, tt.durationDays, got, tt.want)
			}
		})
	}
}
