package solution

import "math"

// volEps is the volume [L] below which concentrations are held rather than
// recomputed by division.
const volEps = 0.1

// Step applies one day of water consumption and nutrient uptake to the
// solution by total-mass accounting: concentrations are never adjusted by
// direct subtraction, only via mass ÷ volume with the post-consumption
// volume. The tank volume never drops below floor (reserved for
// circulation) and every concentration is clamped at ConcFloor. Any clamp
// or non-finite intermediate is reported as a Guard; the update always
// completes.
func (s *State) Step(consumed float64, uptakeMg map[string]float64, floor float64) []Guard {
	var gs []Guard

	v0 := s.Volume
	v1 := v0 - consumed
	if v1 < floor {
		gs = append(gs, Guard{Kind: "volume_floor", Value: v1})
		v1 = floor
	}
	s.Volume = v1

	for id, c0 := range s.Conc {
		u := uptakeMg[id]
		m0 := c0 * v0
		m1 := m0 - u
		if m1 < 0 {
			gs = append(gs, Guard{Kind: "negative_mass", Nutrient: id, Value: m1})
			m1 = 0
		}
		var c1 float64
		if v1 > volEps {
			c1 = m1 / v1
		} else {
			c1 = c0 // near-zero volume: hold concentration rather than divide
			gs = append(gs, Guard{Kind: "near_zero_volume", Nutrient: id, Value: v1})
		}
		if math.IsNaN(c1) || math.IsInf(c1, 0) {
			gs = append(gs, Guard{Kind: "non_finite_conc", Nutrient: id, Value: c1})
			c1 = c0
		}
		if c1 < ConcFloor {
			gs = append(gs, Guard{Kind: "conc_floor", Nutrient: id, Value: c1})
			c1 = ConcFloor
		}
		s.Conc[id] = c1
	}
	return gs
}

// UpdateEC re-estimates electrical conductivity from the cations:
// mg/L → mol/L (÷ molar mass) → eq/L (× charge) → meq/L (×1000), summed
// over cations and mapped through the fixed linear relation EC = a + b·Σmeq.
// This is an empirical regression, not an ionic-strength model.
func (s *State) UpdateEC(species map[string]Species, a, b float64) {
	sum := 0.
	for id, sp := range species {
		if sp.Charge <= 0 || sp.MolarMass <= 0 {
			continue
		}
		sum += s.Conc[id] / sp.MolarMass * float64(sp.Charge) // mg/L → meq/L (÷g/mol ×charge)
	}
	s.EC = a + b*sum
}

// UpdatePH shifts pH by the net ionic charge removed from solution during
// uptake: Δ[H+] = −Δcharge_mol/V added to the current hydrogen-ion
// concentration. A non-positive [H+] clamps to neutral. An explicit
// charge-balance approximation; no equilibrium chemistry.
func (s *State) UpdatePH(species map[string]Species, uptakeMg map[string]float64) {
	if s.Volume <= 0 {
		return
	}
	var dq float64 // mol of charge removed by uptake
	for id, mg := range uptakeMg {
		sp, ok := species[id]
		if !ok || sp.MolarMass <= 0 {
			continue
		}
		dq += mg / 1000. / sp.MolarMass * float64(sp.Charge)
	}
	h := math.Pow(10., -s.PH) - dq/s.Volume
	if h <= 0 {
		s.PH = 7.0
		return
	}
	s.PH = -math.Log10(h)
}
