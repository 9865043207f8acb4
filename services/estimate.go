package services

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TransportMode is how the internal team reaches the site.
type TransportMode string

const (
	TransportCompanyVehicle TransportMode = "veicolo_aziendale"
	TransportPublic         TransportMode = "mezzi_pubblici"
)

// CostCategory buckets every cost item into one of four fixed groups.
type CostCategory string

const (
	CategoryLabor     CostCategory = "Lavoro"
	CategoryTravel    CostCategory = "Viaggio"
	CategoryLodging   CostCategory = "Vitto/Alloggio"
	CategoryLogistics CostCategory = "Logistica"
)

// CostItem is one priced line of the estimate. Amounts are non-negative by
// construction; a negative computed amount is a defect upstream.
type CostItem struct {
	Category    CostCategory `json:"category"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
}

// JobSpecification is the full input of one estimate computation. Distance
// and one-way travel time come from the routing collaborator; the core never
// fetches them itself.
type JobSpecification struct {
	UseInternalTeam bool `json:"useInternalTeam"`
	InternalTechs   int  `json:"internalTechs"`
	UseExternalTeam bool `json:"useExternalTeam"`
	ExternalTechs   int  `json:"externalTechs"`

	// Optional pre-split labor hours; when zero they are derived as
	// duration x hours-per-day x technician count per team.
	InternalHours float64 `json:"internalHours,omitempty"`
	ExternalHours float64 `json:"externalHours,omitempty"`

	ModelQuery     string `json:"model"`
	Spots          int    `json:"spots"`
	IncludePV      bool   `json:"includePV"`
	IncludeGaskets bool   `json:"includeGaskets"`
	IncludeBallast bool   `json:"includeBallast"`
	BallastQuery   string `json:"ballastType,omitempty"`

	TransportMode    TransportMode `json:"transportMode"`
	StartDate        string        `json:"startDate"` // YYYY-MM-DD
	DurationDays     float64       `json:"durationDays"`
	MarginPercent    float64       `json:"marginPercent"`
	DiscountPercent  float64       `json:"discountPercent"`
	HasForklift      bool          `json:"hasForklift"`
	ReturnOnWeekends bool          `json:"returnOnWeekends"`
	PickupAtOrigin   bool          `json:"pickupAtOrigin"`

	Province              string  `json:"province"`
	DistanceKm            float64 `json:"distanceKm"`
	TravelTimeOneWayHours float64 `json:"travelTimeOneWayHours"`
}

// ActiveInternalTechs returns the internal head count actually on the job.
func (s JobSpecification) ActiveInternalTechs() int {
	if !s.UseInternalTeam {
		return 0
	}
	return s.InternalTechs
}

// ActiveExternalTechs returns the external head count actually on the job.
func (s JobSpecification) ActiveExternalTechs() int {
	if !s.UseExternalTeam {
		return 0
	}
	return s.ExternalTechs
}

// Validate rejects the inputs for which no sensible estimate exists. All
// other input problems degrade to defaults inside the pipeline instead.
func (s JobSpecification) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Spots, validation.Min(0).Error("il numero di posti non può essere negativo")),
		validation.Field(&s.DurationDays, validation.Required.Error("la durata deve essere maggiore di zero"),
			validation.Min(0.0).Exclusive().Error("la durata deve essere maggiore di zero")),
		validation.Field(&s.InternalTechs, validation.Min(0)),
		validation.Field(&s.ExternalTechs, validation.Min(0)),
		validation.Field(&s.UseInternalTeam, validation.By(func(any) error {
			if s.ActiveInternalTechs()+s.ActiveExternalTechs() <= 0 {
				return errNoTechnicians
			}
			return nil
		})),
	)
}

var errNoTechnicians = validation.NewError(
	"validation_no_technicians",
	"serve almeno un tecnico tra squadra interna ed esterna",
)

// Start parses the job start date; the zero time is returned for a blank or
// malformed date, which disables weekend detection.
func (s JobSpecification) Start() time.Time {
	t, err := time.Parse("2006-01-02", s.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EstimateResult is the complete priced quote for one scenario. It is built
// fresh per computation and never mutated by the core afterwards; consumers
// must read the totals from here rather than re-summing categories.
type EstimateResult struct {
	Items []CostItem `json:"items"`

	TotalCost    float64 `json:"totalCost"`
	SalesPrice   float64 `json:"salesPrice"`
	MarginAmount float64 `json:"marginAmount"`

	TotalHours    float64 `json:"totalHours"`
	TotalWeightKg float64 `json:"totalWeightKg"`

	VehicleClass         VehicleClass `json:"vehicleClass"`
	LogisticsMethod      string       `json:"logisticsMethod"`
	LogisticsEstimated   bool         `json:"logisticsEstimated"`
	WeekendReturnApplied bool         `json:"weekendReturnApplied"`
	DiscountPercent      float64      `json:"discountPercent"`

	// Explanations holds the human-readable derivation per subject
	// (hours, weight, transport, one entry per cost category) so a
	// reviewer can tell tabulated values from estimated fallbacks.
	Explanations map[string]string `json:"explanations"`
}

// CategoryTotal sums the items of one category.
func (r EstimateResult) CategoryTotal(cat CostCategory) float64 {
	var sum float64
	for _, item := range r.Items {
		if item.Category == cat {
			sum += item.Amount
		}
	}
	return sum
}
