// Package solution models the recirculating nutrient-solution tank: volume,
// per-ion concentrations, and the empirical EC and pH estimates.
package solution

// ConcFloor is the minimum concentration carried for any species [mg/L].
// Concentrations are never driven below this strictly positive floor.
const ConcFloor = 0.1

// Species : a dissolved nutrient ion
type Species struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	MolarMass float64 `yaml:"molar_mass"` // g/mol
	Charge    int     `yaml:"charge"`     // ionic charge, signed
	Initial   float64 `yaml:"initial"`    // mg/L
	Min       float64 `yaml:"min"`        // mg/L
	Max       float64 `yaml:"max"`        // mg/L
}

// State : the mutable solution state, updated once per simulated day
type State struct {
	Volume float64            // L
	Conc   map[string]float64 // mg/L by species ID
	PH     float64
	EC     float64 // dS/m
}

// Guard records a locally recovered numeric anomaly.
type Guard struct {
	Kind     string
	Nutrient string
	Value    float64
}

// New initializes the solution from the configured tank volume and the
// species' initial concentrations.
func New(volume float64, species []Species) State {
	s := State{
		Volume: volume,
		Conc:   make(map[string]float64, len(species)),
		PH:     6.0,
	}
	for _, sp := range species {
		s.Conc[sp.ID] = sp.Initial
	}
	return s
}

// DefaultSpecies returns the standard five-ion leaf-crop solution.
func DefaultSpecies() []Species {
	return []Species{
		{ID: "N-NO3", Name: "Nitrogen-Nitrate", MolarMass: 62.0, Charge: -1, Initial: 200., Min: 150., Max: 300.},
		{ID: "P-PO4", Name: "Phosphorus-Phosphate", MolarMass: 95.0, Charge: -3, Initial: 50., Min: 30., Max: 80.},
		{ID: "K", Name: "Potassium", MolarMass: 39.1, Charge: 1, Initial: 300., Min: 250., Max: 400.},
		{ID: "Ca", Name: "Calcium", MolarMass: 40.1, Charge: 2, Initial: 150., Min: 100., Max: 200.},
		{ID: "Mg", Name: "Magnesium", MolarMass: 24.3, Charge: 2, Initial: 50., Min: 30., Max: 70.},
	}
}
