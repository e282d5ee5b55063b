package hydrosim

import (
	"github.com/hydrosol/hydrosim/envctl"
	"github.com/hydrosol/hydrosim/growth"
	"github.com/hydrosol/hydrosim/plant"
	"github.com/hydrosol/hydrosim/roots"
	"github.com/hydrosol/hydrosim/solution"
)

// simState everything a day mutates, threaded through the daily step as an
// explicit value. Day N+1 sees exactly what day N returned.
type simState struct {
	day    int // 1-based simulation day
	stage  growth.State
	canopy growth.Canopy
	sol    solution.State
	bio    plant.Biomass
	rs     roots.System
	ctl    envctl.State

	rzt float64 // solution temperature [°C]
	co2 float64 // controlled ambient CO2 [μmol/mol]
	rh  float64 // controlled relative humidity [%], 0 until first control step

	laiHist   []float64 // recent LAI trace for transition telemetry
	laiSignal string    // last emitted telemetry signal
}

func (m *Simulator) initialState() simState {
	st := simState{
		day:    0,
		sol:    solution.New(m.cfg.System.TankVolume, m.cfg.Species),
		canopy: m.staticCanopyParams(),
		co2:    m.set.AmbientCO2,
	}
	st.rzt = 18.
	if m.cfg.MechanisticUptake {
		st.bio = plant.NewBiomass(m.cfg.System.Plants, m.cfg.System.SeedlingWeight)
		st.rs = roots.NewSystem(m.kind, m.cfg.System.Plants, m.cfg.System.SeedlingWeight)
	}
	return st
}

// staticCanopyParams fixed canopy parameters from CropParams, neutral
// factors.
func (m *Simulator) staticCanopyParams() growth.Canopy {
	return growth.Canopy{
		LAI:          m.cfg.Crop.LAI,
		Height:       m.cfg.Crop.Height,
		Kcb:          m.cfg.Crop.Kcb,
		Phi:          m.cfg.Crop.Phi,
		TempFactor:   1.,
		DLIFactor:    1.,
		EnvFactor:    1.,
		UptakeFactor: 1.,
	}
}
