package uptake

import "math"

// Gates : multiplicative scalers on the Monod term for one day
type Gates struct {
	Capacity  float64 // plant uptake capacity (biomass/root-surface derived)
	RootEff   float64 // root efficiency × solution-contact fraction
	Surface   float64 // root surface [cm²], normalized internally
	EnvFactor float64 // aggregate environmental growth factor, ~0–1.5
	Volume    float64 // solution volume [L]
}

// Diag : per-nutrient uptake diagnostics for one day
type Diag struct {
	Rate          float64 // mg/day, before any water-stress scaling
	Saturation    float64
	SurfaceFactor float64
	VolStability  float64
	Limitation    string
	DepletionDays float64
}

// Monod computes the day's uptake [mg] for one nutrient:
// Vmax(stage)·C/(Km(stage)+C) scaled by capacity, stage efficiency, root
// gates and the environmental factor. Zero below the minimum threshold;
// damped above the beneficial maximum (luxury consumption). Deterministic:
// identical inputs always yield identical outputs.
func Monod(conc float64, k Kinetics, g Gates) (float64, Diag) {
	surfFactor := math.Min(2., g.Surface/500.) // vs typical mature root surface
	volStab := math.Min(1., g.Volume/100.)

	d := Diag{
		Saturation:    math.Min(1., conc/math.Max(k.Km, 1e-9)),
		SurfaceFactor: surfFactor,
		VolStability:  volStab,
	}

	if conc < k.MinConc {
		d.Limitation = "minimum_threshold"
		d.DepletionDays = math.Inf(1)
		return 0., d
	}

	rate := k.Vmax * conc / (k.Km + conc) * g.Capacity * k.Efficiency * g.EnvFactor * g.RootEff * surfFactor

	switch {
	case conc < k.Km:
		d.Limitation = "concentration_limited"
	case g.Capacity < 1.:
		d.Limitation = "root_limited"
	case g.RootEff < 0.7:
		d.Limitation = "root_health_limited"
	case g.EnvFactor < 0.8:
		d.Limitation = "environment_limited"
	default:
		d.Limitation = "optimal"
	}

	if conc > k.MaxConc {
		rate *= 0.7
		d.Limitation = "luxury_consumption"
	}
	rate *= volStab

	d.Rate = rate
	d.DepletionDays = conc / (rate/math.Max(g.Volume, 1e-9) + 1e-10)
	return rate, d
}
