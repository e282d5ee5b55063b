package growth

import "math"

// Params : stage-specific canopy development targets
type Params struct {
	LAImin, LAImax       float64
	HeightMin, HeightMax float64 // m
	KcbBase, PhiBase     float64
	Duration             int     // days
	OptTemp              float64 // °C
	OptDLI               float64 // mol/m²/day
	UptakeFactor         float64
}

// Model holds the phenology parameterization. Stages advance on calendar
// days after transplant, or on accumulated thermal time when ThermalTime
// is set.
type Model struct {
	Stages                      map[Stage]Params
	BaseTemp, CardTemp, MaxTemp float64 // cardinal temperatures, °C
	GDDExponential, GDDMature   float64 // thermal-time transition thresholds
	ThermalTime                 bool
}

// State : per-day phenological state, threaded through the daily loop
type State struct {
	Stage    Stage
	Day      int // days after transplant
	StageDay int
	GDD      float64 // accumulated thermal time, base-temperature degree-days
}

// Canopy : derived canopy parameters for one day
type Canopy struct {
	LAI, Height, Kcb, Phi float64
	TempFactor, DLIFactor float64
	EnvFactor             float64
	UptakeFactor          float64
}

// DefaultModel returns the three-stage leaf-crop parameterization.
func DefaultModel() *Model {
	return &Model{
		Stages: map[Stage]Params{
			Establishment: {
				LAImin: 0.2, LAImax: 1.5,
				HeightMin: 0.05, HeightMax: 0.15,
				KcbBase: 0.70, PhiBase: 0.75,
				Duration: 14,
				OptTemp:  18.0, OptDLI: 12.0,
				UptakeFactor: 0.6,
			},
			Exponential: {
				LAImin: 1.5, LAImax: 4.0,
				HeightMin: 0.15, HeightMax: 0.35,
				KcbBase: 1.00, PhiBase: 0.90,
				Duration: 21,
				OptTemp:  22.0, OptDLI: 18.0,
				UptakeFactor: 1.2,
			},
			Maturation: {
				LAImin: 3.5, LAImax: 4.0, // reverse logistic: LAI declines 4.0→3.5
				HeightMin: 0.30, HeightMax: 0.35,
				KcbBase: 0.85, PhiBase: 0.80,
				Duration: 10,
				OptTemp:  20.0, OptDLI: 15.0,
				UptakeFactor: 0.8,
			},
		},
		BaseTemp: 4.0, CardTemp: 20.0, MaxTemp: 35.0,
		GDDExponential: 224.0, GDDMature: 560.0,
	}
}

// NewState returns the pre-transplant state.
func NewState() State { return State{Stage: Establishment} }

// DailyGDD computes thermal time for one day using a cardinal-temperature
// ramp: linear from base to optimum, declining to zero at the maximum.
func (m *Model) DailyGDD(tavg float64) float64 {
	switch {
	case tavg <= m.BaseTemp:
		return 0.
	case tavg <= m.CardTemp:
		return tavg - m.BaseTemp
	case tavg < m.MaxTemp:
		return (m.MaxTemp - tavg) / (m.MaxTemp - m.CardTemp) * (m.CardTemp - m.BaseTemp)
	default:
		return 0.
	}
}

// Advance steps the phenological state by one day. The stage ordinal is
// strictly non-decreasing: a later stage is never re-entered.
func (m *Model) Advance(s State, tavg float64) State {
	s.Day++
	s.StageDay++
	s.GDD += m.DailyGDD(tavg)

	next := s.Stage
	if m.ThermalTime {
		switch {
		case s.GDD >= m.GDDMature:
			next = Maturation
		case s.GDD >= m.GDDExponential:
			next = Exponential
		}
	} else {
		switch {
		case s.Day > 35:
			next = Maturation
		case s.Day > 14:
			next = Exponential
		}
	}
	if next > s.Stage {
		s.Stage = next
		s.StageDay = 1
	}
	return s
}

// TempFactor : beta-curve temperature response on growth rate, 0.1–2.0
func (m *Model) TempFactor(tavg float64, st Stage) float64 {
	if tavg < m.BaseTemp {
		return 0.1
	}
	if tavg > m.MaxTemp {
		return 0.3
	}
	rng := m.MaxTemp - m.BaseTemp
	x := (tavg - m.BaseTemp) / rng
	xo := (m.Stages[st].OptTemp - m.BaseTemp) / rng
	var f float64
	if x <= xo {
		f = math.Pow(x/xo, 2.)
	} else {
		f = math.Pow((1.-x)/(1.-xo), 2.)
	}
	return math.Max(0.1, math.Min(2., f))
}

// DLIFactor : saturating daily-light-integral response, 0.3–1.8.
// Solar radiation [MJ/m²/day] is converted to an approximate DLI at
// 2.1 mol/MJ.
func (m *Model) DLIFactor(srad float64, st Stage) float64 {
	dli := srad * 2.1
	if dli <= 0 {
		return 0.1
	}
	km := m.Stages[st].OptDLI * 0.5
	return math.Max(0.3, math.Min(1.8, dli/(dli+km)))
}

// Derive computes the day's canopy parameters. Each parameter follows an
// independent logistic from its stage-entry to stage-exit target, with
// steepness scaled inversely by the combined temperature×light factor.
// Maturation LAI is the one reversed curve (senescence decline).
func (m *Model) Derive(s State, tavg, srad float64) Canopy {
	p := m.Stages[s.Stage]
	tf := m.TempFactor(tavg, s.Stage)
	df := m.DLIFactor(srad, s.Stage)
	ef := (tf + df) / 2.

	c := Canopy{
		TempFactor:   tf,
		DLIFactor:    df,
		EnvFactor:    ef,
		UptakeFactor: p.UptakeFactor * ef,
	}
	c.Height = m.logistic(s, p.HeightMin, p.HeightMax, ef, false)
	c.Kcb = m.logistic(s, p.KcbBase*0.8, p.KcbBase, ef, false)
	c.Phi = m.logistic(s, p.PhiBase*0.9, p.PhiBase, ef, false)
	if s.Stage == Maturation {
		c.LAI = m.logistic(s, p.LAImin, p.LAImax, ef, true)
	} else {
		c.LAI = m.logistic(s, p.LAImin, p.LAImax, ef, false)
	}
	return c
}

func (m *Model) logistic(s State, min, max, envFactor float64, reverse bool) float64 {
	d := float64(m.Stages[s.Stage].Duration)
	mid := d / 2.
	steep := 0.4
	if reverse {
		steep = 0.3
	} else if envFactor > 0 {
		steep = 0.4 / envFactor
	}
	prog := 1. / (1. + math.Exp(-steep*(float64(s.StageDay)-mid)))
	var v float64
	if reverse {
		v = max - (max-min)*prog
	} else {
		v = min + (max-min)*prog
	}
	return math.Max(0.01, v)
}
