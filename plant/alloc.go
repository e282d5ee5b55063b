package plant

import (
	"math"

	"github.com/hydrosol/hydrosim/growth"
)

// AllocParams : carbon→biomass conversion and shoot/root partitioning
type AllocParams struct {
	CarbonFraction  float64 // g C per g structural dry matter
	GrowthResp      float64 // growth-respiration fraction of assimilate
	CNRatio         float64 // g biomass supportable per g N
	RootShare       map[growth.Stage]float64
	StressRootBonus float64 // extra root share under full stress
	MaxRootShare    float64
}

// DefaultAllocParams returns the default stand allocation.
func DefaultAllocParams() AllocParams {
	return AllocParams{
		CarbonFraction: 0.45,
		GrowthResp:     0.25,
		CNRatio:        10.,
		RootShare: map[growth.Stage]float64{
			growth.Establishment: 0.35,
			growth.Exponential:   0.20,
			growth.Maturation:    0.15,
		},
		StressRootBonus: 0.15,
		MaxRootShare:    0.5,
	}
}

// Allocate converts the day's gross carbon gain [g C] and nitrogen uptake
// [g N] into a structural biomass increment net of growth respiration,
// limited by whichever of carbon or nitrogen (including stores) is
// scarcer, and partitions it between shoot and root. Pools only decrease
// through the explicit root turnover applied downstream.
func (p AllocParams) Allocate(b Biomass, assimC, nUptake, envFactor float64, stage growth.Stage) (Biomass, float64, float64) {
	b.CarbonStore += assimC
	b.NitrogenStore += nUptake

	fromC := b.CarbonStore * (1. - p.GrowthResp) / p.CarbonFraction
	fromN := b.NitrogenStore * p.CNRatio
	inc := math.Max(0., math.Min(fromC, fromN))
	// stores buffer day-to-day imbalance; draw down only half per day
	inc *= 0.5

	cUsed := inc * p.CarbonFraction / (1. - p.GrowthResp)
	nUsed := inc / p.CNRatio
	b.CarbonStore = math.Max(0., b.CarbonStore-cUsed)
	b.NitrogenStore = math.Max(0., b.NitrogenStore-nUsed)

	rootShare := p.RootShare[stage] + p.StressRootBonus*math.Max(0., 1.-envFactor)
	if rootShare > p.MaxRootShare {
		rootShare = p.MaxRootShare
	}
	rootInc := inc * rootShare
	shootInc := inc - rootInc

	b.Structural += inc
	b.Shoot += shootInc
	b.Root += rootInc
	b.FreshWeight = b.Structural * freshToDry
	return b, shootInc, rootInc
}
