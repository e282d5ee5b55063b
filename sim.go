package hydrosim

import (
	"fmt"
	"math"
	"sort"

	"github.com/hydrosol/hydrosim/envctl"
	"github.com/hydrosol/hydrosim/et"
	"github.com/hydrosol/hydrosim/growth"
	"github.com/hydrosol/hydrosim/met"
	"github.com/hydrosol/hydrosim/plant"
	"github.com/hydrosol/hydrosim/roots"
	"github.com/hydrosol/hydrosim/solution"
	"github.com/hydrosol/hydrosim/uptake"
)

// Simulator owns one run's configuration and composed strategies. All
// mutable per-day state lives in the simState value threaded through step.
type Simulator struct {
	cfg  Config
	spc  map[string]solution.Species
	ids  []string // species IDs in stable order
	kind roots.Kind
	gmdl *growth.Model
	tbl  uptake.Table

	alloc plant.AllocParams
	photo plant.PhotoParams
	set   envctl.Setpoints

	canopy canopyStrategy
	upt    uptakeStrategy
	ctl    controlStrategy
}

// New validates the configuration and composes the run. Any rejection here
// is fatal; no day simulates after an error.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, _ := roots.ParseKind(cfg.System.SystemType)

	m := &Simulator{
		cfg:   cfg,
		spc:   make(map[string]solution.Species, len(cfg.Species)),
		kind:  kind,
		tbl:   uptake.DefaultTable(),
		alloc: plant.DefaultAllocParams(),
		photo: plant.DefaultPhotoParams(),
		set:   envctl.DefaultSetpoints(),
	}
	if cfg.Kinetics != nil {
		m.tbl = cfg.Kinetics
	}
	if cfg.Alloc != nil {
		m.alloc = *cfg.Alloc
	}
	if cfg.Photo != nil {
		m.photo = *cfg.Photo
	}
	if cfg.Setpoints != nil {
		m.set = *cfg.Setpoints
	}
	for _, sp := range cfg.Species {
		m.spc[sp.ID] = sp
		m.ids = append(m.ids, sp.ID)
	}
	sort.Strings(m.ids)

	m.gmdl = growth.DefaultModel()
	m.gmdl.ThermalTime = cfg.ThermalTime
	if cfg.DynamicGrowth {
		m.canopy = dynamicCanopy{m.gmdl}
	} else {
		m.canopy = staticCanopy{m.staticCanopyParams()}
	}
	if cfg.MechanisticUptake {
		m.upt = mechanisticUptake{m.tbl}
	} else {
		m.upt = proportionalUptake{}
	}
	if cfg.EnvControl {
		m.ctl = pidControl{envctl.NewController(m.set)}
	} else {
		m.ctl = passiveControl{m.set.AmbientCO2}
	}
	return m, nil
}

// Run simulates the weather sequence day by day. It returns the full
// ordered result set, or a pre-loop error; mid-run numeric anomalies are
// clamped and recorded, never fatal.
func (m *Simulator) Run(ws []met.Day) (*Run, error) {
	nd := m.cfg.nDays()
	if len(ws) < nd {
		return nil, &ConfigError{"weather", fmt.Sprintf("%d records supplied for a %d day run", len(ws), nd)}
	}

	st := m.initialState()
	r := &Run{Days: make([]DayResult, 0, nd)}
	for i := 0; i < nd; i++ {
		var dr DayResult
		var fs []uptake.Fault
		var evs []Event
		st, dr, fs, evs = m.step(st, ws[i])
		r.Days = append(r.Days, dr)
		r.Faults = append(r.Faults, fs...)
		r.Events = append(r.Events, evs...)
		if m.cfg.MatureStop && st.stage.Stage == growth.Maturation {
			break
		}
	}
	r.Summary = m.summarize(r.Days)
	return r, nil
}

// step advances the simulation by one day: canopy, water demand, aerial and
// root-zone factors, nutrient uptake, water-balance constraint, solution
// chemistry, then biomass and roots. Day N+1 consumes exactly the state
// returned here.
func (m *Simulator) step(st simState, w met.Day) (simState, DayResult, []uptake.Fault, []Event) {
	st.day++
	dr := newDayResult(st.day, w)
	var evs []Event

	// canopy and phenology
	st.canopy = m.canopy.resolve(&st, w)
	if m.cfg.DynamicGrowth {
		dr.Stage = st.stage.Stage.String()
		dr.GDD = st.stage.GDD

		// advisory LAI-trace telemetry; phenology never consults it
		st.laiHist = append(st.laiHist, st.canopy.LAI)
		if n := len(st.laiHist); n > 10 {
			st.laiHist = st.laiHist[n-10:]
		}
		if sig, ok := growth.DetectTransition(st.laiHist, 3); ok && sig != st.laiSignal {
			st.laiSignal = sig
			evs = append(evs, Event{Day: st.day, Kind: "growth_signal", Detail: sig})
		}
	}
	dr.LAI, dr.Height = st.canopy.LAI, st.canopy.Height
	dr.Kcb, dr.Phi = st.canopy.Kcb, st.canopy.Phi

	// reference and crop evapotranspiration
	rn := et.NetRadiation(w.SolarRad, w.Tmax, w.Tmin, w.RH, 0.)
	var eto float64
	if m.cfg.ETMethod == "makkink" {
		eto = et.Makkink(w.SolarRad, w.Tavg)
	} else {
		eto = et.ReferenceET(rn, w.Tavg, w.Tmin, w.Tmax, w.Wind, w.RH, m.cfg.System.Elevation)
	}
	etc, tr := et.CropET(eto, st.canopy.Kcb, st.canopy.Phi, st.canopy.LAI, st.canopy.Height)
	demand := et.Demand(tr, m.cfg.System.Area)
	dr.NetRadiation, dr.ETo, dr.ETc, dr.Transpiration = rn, eto, etc, tr

	// aerial control and root-zone factors
	ctl := m.ctl.control(&st, w)
	st.rzt = roots.SolutionTemp(w.Tavg, w.SolarRad, m.cfg.System.TankVolume, st.rzt)
	rztf := roots.RZTFactor(st.rzt, w.Tavg)
	ef := st.canopy.EnvFactor * rztf * ctl.photoF * ctl.co2F
	if ef > 1.5 {
		ef = 1.5
	}
	demand *= ctl.transpF
	if m.cfg.MechanisticUptake {
		// unhealthy roots also throttle water delivery
		demand *= .5 + .5*st.rs.HealthFactor()
	}
	dr.VPD, dr.TranspF, dr.PhotoF, dr.CO2F = ctl.vpd, ctl.transpF, ctl.photoF, ctl.co2F
	dr.CO2, dr.RH = ctl.co2, ctl.rh
	dr.StressLevel, dr.EnergyKWh = ctl.level, ctl.energyKWh
	dr.SolutionTemp, dr.RZTFactor, dr.EnvFactor = st.rzt, rztf, ef
	dr.WaterDemand = demand

	// nutrient uptake, then the water-balance constraint scales it
	volBefore := st.sol.Volume
	unscaled, diags := m.upt.uptake(&st, demand, ef)

	avail := math.Max(0., st.sol.Volume-m.cfg.System.FloorVolume)
	actual := math.Min(demand, avail)
	stress := 1.
	scaled := make(map[string]float64, len(unscaled))
	for id, u := range unscaled {
		scaled[id] = u
	}
	if demand > 0. && actual < demand {
		stress = actual / demand
		for id := range scaled {
			scaled[id] *= stress
		}
		evs = append(evs, Event{Day: st.day, Kind: "water_stress",
			Detail: fmt.Sprintf("demand %.2f L exceeds available %.2f L, stress factor %.3f", demand, avail, stress)})
	}
	dr.WaterUptake, dr.WaterStress = actual, stress

	// predicted trajectory for fault screening, before chemistry mutates state
	predicted := make(map[string]float64, len(unscaled))
	for id, c := range st.sol.Conc {
		predicted[id] = c - unscaled[id]/math.Max(volBefore, 1e-9)
	}

	for _, g := range st.sol.Step(actual, scaled, m.cfg.System.FloorVolume) {
		evs = append(evs, Event{Day: st.day, Kind: "numeric_guard",
			Detail: fmt.Sprintf("%s %s clamped at %.4g", g.Nutrient, g.Kind, g.Value)})
	}
	st.sol.UpdateEC(m.spc, m.cfg.ECIntercept, m.cfg.ECSlope)
	st.sol.UpdatePH(m.spc, scaled)
	dr.EC, dr.PH, dr.TankVolume = st.sol.EC, st.sol.PH, st.sol.Volume
	for id, c := range st.sol.Conc {
		dr.Conc[id] = c
	}
	for id := range scaled {
		dr.Uptake[id] = scaled[id]
		dr.UptakeUnscaled[id] = unscaled[id]
	}

	var faults []uptake.Fault
	if diags != nil {
		faults = uptake.Detect(st.day, predicted, st.sol.Conc, diags, m.tbl)
	}

	// carbon assimilation, allocation, root dynamics
	if m.cfg.MechanisticUptake {
		ppfd := plant.PPFD(w.SolarRad, m.set.LightHours)
		assim := m.photo.Assimilation(ppfd, ctl.co2, w.Tavg, st.canopy.LAI) * ctl.photoF
		nUp := scaled["N-NO3"] / 1000. // mg nitrate-N to g N
		var rootInc float64
		st.bio, _, rootInc = m.alloc.Allocate(st.bio, assim*m.cfg.System.Area, nUp, math.Min(1., ef), st.stage.Stage)
		env := roots.Env{
			SolutionTemp: st.rzt,
			DissolvedO2:  o2Saturation(st.rzt),
			PH:           st.sol.PH,
			FlowRate:     m.cfg.System.FlowRate,
		}
		st.rs = st.rs.Step(rootInc, st.stage.Stage, env)

		dr.Assimilation = assim
		dr.TotalDry = st.bio.TotalDry()
		dr.FreshWeight = st.bio.FreshWeight
		dr.RootMass, dr.RootSurface, dr.RootHealth = st.rs.Mass, st.rs.Surface, st.rs.Health
		dr.UptakeCapacity = st.bio.UptakeCapacity(&st.rs)
	}

	dr.WUE = m.wue(w.SolarRad, ctl.vpd, st.sol.Conc, st.stage.Stage, stress)

	return st, dr, faults, evs
}

// wue process-based water-use efficiency [kg dry matter/m³], bounded.
func (m *Simulator) wue(srad, vpd float64, conc map[string]float64, stage growth.Stage, stress float64) float64 {
	const base = 2.8 // kg/m³ for a leaf crop

	lf := math.Min(1.8, math.Max(.5, srad/18.))

	var vf float64
	if vpd <= .8 {
		vf = 1. + (.8-vpd)*.25
	} else {
		vf = math.Max(.4, 1.-(vpd-.8)*.5)
	}

	nf := 1.
	if n, ok := conc["N-NO3"]; ok {
		p := conc["P-PO4"]
		nf = math.Min(1.3, math.Max(.6, (n/200.+p/50.)/2.))
	}

	sf := 1.
	if m.cfg.DynamicGrowth {
		switch stage {
		case growth.Establishment:
			sf = .8
		case growth.Exponential:
			sf = 1.1
		case growth.Maturation:
			sf = .9
		}
	}

	wf := math.Max(.3, stress)
	return math.Max(.5, math.Min(6., base*lf*vf*nf*sf*wf))
}

// o2Saturation dissolved oxygen at saturation [mg/L] for water at t [°C].
func o2Saturation(t float64) float64 {
	return 14.62 - .3898*t + .006969*t*t - .00005896*t*t*t
}
