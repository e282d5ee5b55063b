package hydrosim

import (
	"github.com/hydrosol/hydrosim/envctl"
	"github.com/hydrosol/hydrosim/growth"
	"github.com/hydrosol/hydrosim/met"
	"github.com/hydrosol/hydrosim/plant"
	"github.com/hydrosol/hydrosim/uptake"
)

// Optional submodels are selected once at setup and composed by the daily
// loop; a disabled option is an identity implementation, never a branch
// inside the loop.

// canopyStrategy resolves the day's canopy parameters, advancing phenology
// when the dynamic path is active.
type canopyStrategy interface {
	resolve(st *simState, w met.Day) growth.Canopy
}

type staticCanopy struct{ c growth.Canopy }

func (s staticCanopy) resolve(st *simState, w met.Day) growth.Canopy { return s.c }

type dynamicCanopy struct{ mdl *growth.Model }

func (d dynamicCanopy) resolve(st *simState, w met.Day) growth.Canopy {
	st.stage = d.mdl.Advance(st.stage, w.Tavg)
	return d.mdl.Derive(st.stage, w.Tavg, w.SolarRad)
}

// uptakeStrategy computes per-nutrient uptake mass [mg] for the day, before
// the water-balance constraint scales it.
type uptakeStrategy interface {
	uptake(st *simState, demandL, envFactor float64) (map[string]float64, map[string]uptake.Diag)
}

// proportionalUptake depletes each nutrient with the transpiration stream,
// modulated by the stage uptake factor.
type proportionalUptake struct{}

func (proportionalUptake) uptake(st *simState, demandL, envFactor float64) (map[string]float64, map[string]uptake.Diag) {
	u := make(map[string]float64, len(st.sol.Conc))
	for id, c := range st.sol.Conc {
		u[id] = c * demandL * st.canopy.UptakeFactor
	}
	return u, nil
}

// mechanisticUptake saturating kinetics gated by plant capacity, root
// surface, and the aggregate environmental factor.
type mechanisticUptake struct{ tbl uptake.Table }

func (m mechanisticUptake) uptake(st *simState, demandL, envFactor float64) (map[string]float64, map[string]uptake.Diag) {
	g := uptake.Gates{
		Capacity:  st.bio.UptakeCapacity(&st.rs),
		RootEff:   st.rs.Eff * st.rs.Contact * st.rs.HealthFactor(),
		Surface:   st.rs.Surface,
		EnvFactor: envFactor,
		Volume:    st.sol.Volume,
	}
	u := make(map[string]float64, len(st.sol.Conc))
	ds := make(map[string]uptake.Diag, len(st.sol.Conc))
	for id, c := range st.sol.Conc {
		ks, ok := m.tbl[id]
		if !ok {
			continue
		}
		rate, d := uptake.Monod(c, ks[st.stage.Stage], g)
		u[id] = rate
		ds[id] = d
	}
	return u, ds
}

// control the day's aerial outcome handed to the loop.
type control struct {
	vpd             float64
	transpF, photoF float64
	co2F            float64
	co2             float64
	rh              float64
	level           string
	energyKWh       float64
}

// controlStrategy evaluates aerial conditions and, when active, steers them
// and carries feedback into the next day's ambient state.
type controlStrategy interface {
	control(st *simState, w met.Day) control
}

// passiveControl reports VPD at measured conditions with neutral factors.
type passiveControl struct{ ambientCO2 float64 }

func (p passiveControl) control(st *simState, w met.Day) control {
	return control{
		vpd:     envctl.VPD(w.Tavg, w.RH),
		transpF: 1., photoF: 1., co2F: 1.,
		co2:   p.ambientCO2,
		rh:    w.RH,
		level: "optimal",
	}
}

// pidControl full controller loop: stress factors at the controlled
// conditions, PID actuation, feedback into tomorrow's ambient CO2 and
// humidity.
type pidControl struct{ c *envctl.Controller }

func (p pidControl) control(st *simState, w met.Day) control {
	rh := st.rh
	if rh <= 0. {
		rh = w.RH
	}
	co2 := st.co2
	vpd := envctl.VPD(w.Tavg, rh)
	tf, pf, lvl := envctl.VPDStress(vpd, p.c.Set.TargetVPD, p.c.Set.VPDTolerance)
	lightOn := w.SolarRad > 5.
	ppfd := plant.PPFD(w.SolarRad, p.c.Set.LightHours)
	cf := envctl.CO2Factor(co2, w.Tavg, ppfd)

	a, ns := p.c.Step(st.ctl, w.Tavg, rh, co2, lightOn)
	st.ctl = ns
	st.rh, st.co2 = p.c.Apply(a, rh, co2)

	return control{
		vpd:     vpd,
		transpF: tf, photoF: pf, co2F: cf,
		co2:       co2,
		rh:        rh,
		level:     lvl,
		energyKWh: a.EnergyKWh,
	}
}
