// Package roots evolves the hydroponic root system: mass, geometry, health
// and the solution-contact fraction that gates nutrient uptake capacity.
package roots

import (
	"math"

	"github.com/hydrosol/hydrosim/growth"
)

// Kind is the hydroponic system archetype, which fixes the root-solution
// contact geometry.
type Kind int

const (
	NFT Kind = iota
	DWC
	Aeroponics
)

func (k Kind) String() string {
	switch k {
	case NFT:
		return "NFT"
	case DWC:
		return "DWC"
	case Aeroponics:
		return "AEROPONICS"
	}
	return "unknown"
}

// ParseKind maps a configuration string to its system archetype.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "NFT", "nft":
		return NFT, true
	case "DWC", "dwc":
		return DWC, true
	case "AEROPONICS", "aeroponics", "AERO", "aero":
		return Aeroponics, true
	}
	return NFT, false
}

// Contact returns the baseline fraction of root surface in direct contact
// with the circulating solution.
func (k Kind) Contact() float64 {
	switch k {
	case DWC:
		return 0.8
	case Aeroponics:
		return 0.2
	default: // NFT thin film
		return 0.3
	}
}

func (k Kind) flowDependency() float64 {
	switch k {
	case DWC:
		return 0.2
	case Aeroponics:
		return 0.9
	default:
		return 0.8
	}
}

func (k Kind) optimalFlow() float64 { // L/min
	if k == NFT {
		return 2.0
	}
	return 0.5
}

const (
	initialSRL  = 800. // cm/g specific root length at transplant
	matureSRL   = 600.
	minDiameter = 0.01 // cm
	maxDiameter = 0.05
	minMass     = 0.5 // g, minimum viable root mass

	naturalTurnover = 0.02 // fraction/day
	stressTurnover  = 0.08

	optSolutionTemp = 18.0 // °C
	tempTolerance   = 5.0
	optO2           = 8.0 // mg/L dissolved oxygen
	minO2           = 3.0
	optPH           = 6.0
	phTolerance     = 1.0
)

// System : the root-system state, one per run
type System struct {
	Mass     float64 // g dry
	Length   float64 // cm
	Surface  float64 // cm²
	SRL      float64 // cm/g
	Diameter float64 // cm
	Contact  float64 // solution-contact fraction
	Eff      float64 // uptake efficiency 0–1
	Health   float64 // 0–100
	Growth   float64 // g/day, last step
	Turnover float64 // g/day, last step
	Kind     Kind
}

// Env : root-zone environment for one day
type Env struct {
	SolutionTemp float64 // °C
	DissolvedO2  float64 // mg/L
	PH           float64
	FlowRate     float64 // L/min
}

// NewSystem initializes roots for transplanted seedlings: root mass is
// taken as 18% of total seedling fresh weight.
func NewSystem(k Kind, nPlants int, seedlingWeight float64) System {
	m := float64(nPlants) * seedlingWeight * 0.18
	l := m * initialSRL
	return System{
		Mass:     m,
		Length:   l,
		Surface:  l * math.Pi * minDiameter,
		SRL:      initialSRL,
		Diameter: minDiameter,
		Contact:  k.Contact(),
		Eff:      0.7,
		Health:   75.,
		Kind:     k,
	}
}

// EnvFactor combines the root-zone stressors: the minimum of the
// temperature, oxygen and pH responses, damped by the flow response.
func (s System) EnvFactor(e Env) float64 {
	f := math.Min(tempFactor(e.SolutionTemp), math.Min(oxygenFactor(e.DissolvedO2), phFactor(e.PH))) * s.flowFactor(e.FlowRate)
	return math.Max(0.1, math.Min(f, 1.))
}

// Step advances the root system one day given the root-allocated biomass
// increment. Senescence is the only mass loss and is bounded below by the
// minimum viable mass.
func (s System) Step(rootInc float64, stage growth.Stage, e Env) System {
	ef := s.EnvFactor(e)

	turnover := s.Mass * (naturalTurnover + stressTurnover*(1.-ef))
	if s.Mass+rootInc-turnover < minMass {
		turnover = math.Max(0., s.Mass+rootInc-minMass)
	}
	s.Growth = rootInc
	s.Turnover = turnover
	s.Mass += rootInc - turnover

	// roots thicken with age: SRL declines, diameter grows
	age := math.Min(1., s.Mass/(minMass*10.))
	s.SRL = initialSRL*(1.-age) + matureSRL*age
	s.Diameter = minDiameter + (maxDiameter-minDiameter)*age
	s.Length = s.Mass * s.SRL
	prevSurf := s.Surface
	s.Surface = s.Length * math.Pi * s.Diameter

	surfRatio := 1.
	if prevSurf > 0 {
		surfRatio = math.Min(1., s.Surface/prevSurf)
	}
	s.Eff = math.Max(0.3, math.Min(1., 0.8*ef*surfRatio))

	// health decays under stress, recovers otherwise
	if ef < 0.8 {
		s.Health -= (0.8 - ef) * 25.
	} else {
		s.Health += (ef - 0.8) * 15.
	}
	s.Health = math.Max(0., math.Min(100., s.Health))
	return s
}

// HealthFactor is the multiplicative gate on uptake and transpiration
// capacity.
func (s System) HealthFactor() float64 { return s.Health / 100. }

// EffectiveSurface is the root surface actively exchanging with solution.
func (s System) EffectiveSurface() float64 {
	return s.Surface * s.Contact * s.Eff * s.HealthFactor()
}

func tempFactor(t float64) float64 {
	d := t - optSolutionTemp
	switch {
	case math.Abs(d) <= tempTolerance:
		return 1.
	case d < 0:
		return math.Max(0.1, 1.-(-d-tempTolerance)/tempTolerance)
	default:
		return math.Max(0.1, 1.-(d-tempTolerance)/(tempTolerance*2.))
	}
}

func oxygenFactor(o2 float64) float64 {
	switch {
	case o2 >= optO2:
		return 1.
	case o2 >= minO2:
		return (o2 - minO2) / (optO2 - minO2)
	default:
		return 0.1
	}
}

func phFactor(ph float64) float64 {
	d := math.Abs(ph - optPH)
	if d <= phTolerance {
		return 1.
	}
	return math.Max(0.3, 1.-(d-phTolerance)/phTolerance)
}

func (s System) flowFactor(q float64) float64 {
	if q <= 0 {
		return 0.1
	}
	f := math.Min(1., q/s.Kind.optimalFlow())
	return 1. - s.Kind.flowDependency()*(1.-f)
}
