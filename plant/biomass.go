// Package plant carries the crop biomass pools, daily photosynthesis and
// carbon/nitrogen allocation.
package plant

import "github.com/hydrosol/hydrosim/roots"

const freshToDry = 12.0 // fresh:dry weight ratio for a leaf crop

// Biomass : whole-stand dry-matter pools [g]
type Biomass struct {
	Structural    float64 // shoots + structural roots
	CarbonStore   float64 // g C, stored carbohydrate
	NitrogenStore float64 // g N
	FreshWeight   float64 // g
	Shoot, Root   float64 // partition of structural mass
}

// NewBiomass initializes the stand from plant count × per-plant seedling
// fresh weight.
func NewBiomass(nPlants int, seedlingWeight float64) Biomass {
	fw := float64(nPlants) * seedlingWeight
	dw := fw / freshToDry
	return Biomass{
		Structural:    dw * 0.70,
		CarbonStore:   dw * 0.25,
		NitrogenStore: dw * 0.05,
		FreshWeight:   fw,
		Shoot:         dw * 0.70 * 0.6,
		Root:          dw * 0.70 * 0.4,
	}
}

// TotalDry returns total dry mass over all pools.
func (b Biomass) TotalDry() float64 {
	return b.Structural + b.CarbonStore + b.NitrogenStore
}

// UptakeCapacity converts active root surface to a daily nutrient uptake
// capacity [mg/day per mg/g kinetic unit]. Falls back to a biomass proxy
// when no root system is tracked.
func (b Biomass) UptakeCapacity(rs *roots.System) float64 {
	if rs != nil {
		return rs.EffectiveSurface() * 0.01
	}
	return b.Structural*0.7 + b.NitrogenStore*0.3
}
