package growth

import (
	"testing"
)

func TestStageOrdering(t *testing.T) {
	if !(Establishment < Exponential && Exponential < Maturation) {
		t.Fatal("stage ordinals out of order")
	}
	for _, s := range []Stage{Establishment, Exponential, Maturation} {
		p, ok := ParseStage(s.String())
		if !ok || p != s {
			t.Fatalf("round trip failed for %v", s)
		}
	}
	if _, ok := ParseStage("harvest"); ok {
		t.Fatal("unknown stage must not parse")
	}
}

func TestCalendarTransitions(t *testing.T) {
	m := DefaultModel()
	s := NewState()
	var e2x, x2m int
	prev := s.Stage
	for d := 0; d < 45; d++ {
		s = m.Advance(s, 22.)
		if s.Stage < prev {
			t.Fatalf("day %d: stage regressed %v -> %v", s.Day, prev, s.Stage)
		}
		if prev == Establishment && s.Stage == Exponential {
			e2x = s.Day
		}
		if prev == Exponential && s.Stage == Maturation {
			x2m = s.Day
		}
		prev = s.Stage
	}
	if e2x < 14 || e2x > 16 {
		t.Fatalf("establishment exit on day %d, want near 14-15", e2x)
	}
	if x2m < 35 || x2m > 37 {
		t.Fatalf("exponential exit on day %d, want near 35-36", x2m)
	}
}

func TestThermalTransitions(t *testing.T) {
	m := DefaultModel()
	m.ThermalTime = true
	s := NewState()
	prev := s.Stage
	var e2x, x2m int
	for d := 0; d < 60; d++ {
		s = m.Advance(s, 22.) // 16 GDD/day at 22 °C under the cardinal ramp
		if s.Stage < prev {
			t.Fatalf("day %d: stage regressed", s.Day)
		}
		if prev == Establishment && s.Stage == Exponential {
			e2x = s.Day
		}
		if prev == Exponential && s.Stage == Maturation {
			x2m = s.Day
		}
		prev = s.Stage
	}
	if e2x == 0 || x2m == 0 {
		t.Fatalf("transitions missing: e2x=%d x2m=%d", e2x, x2m)
	}
	if x2m <= e2x {
		t.Fatalf("transition order broken: %d before %d", x2m, e2x)
	}
	if s.GDD < m.GDDMature {
		t.Fatalf("accumulated %v GDD, below maturity threshold", s.GDD)
	}
}

func TestDailyGDD(t *testing.T) {
	m := DefaultModel()
	cases := []struct{ tavg, want float64 }{
		{2., 0.},   // below base
		{12., 8.},  // linear segment
		{20., 16.}, // at the optimum
		{40., 0.},  // above maximum
	}
	for _, c := range cases {
		if g := m.DailyGDD(c.tavg); g != c.want {
			t.Errorf("DailyGDD(%v) = %v, want %v", c.tavg, g, c.want)
		}
	}
	// declining segment stays positive below the maximum
	if g := m.DailyGDD(30.); g <= 0. || g >= 16. {
		t.Errorf("DailyGDD(30) = %v, want within (0, 16)", g)
	}
}

func TestLogisticBounds(t *testing.T) {
	m := DefaultModel()
	s := NewState()
	for d := 0; d < 50; d++ {
		s = m.Advance(s, 22.)
		c := m.Derive(s, 22., 18.)
		p := m.Stages[s.Stage]
		if c.LAI < p.LAImin-1e-9 || c.LAI > p.LAImax+1e-9 {
			t.Fatalf("day %d (%v): LAI %v outside [%v, %v]", s.Day, s.Stage, c.LAI, p.LAImin, p.LAImax)
		}
		if c.Height < p.HeightMin-1e-9 || c.Height > p.HeightMax+1e-9 {
			t.Fatalf("day %d: height %v outside stage bounds", s.Day, c.Height)
		}
	}
}

func TestMaturationLAIDeclines(t *testing.T) {
	m := DefaultModel()
	s := State{Stage: Maturation, Day: 36, StageDay: 1}
	prev := m.Derive(s, 22., 18.).LAI
	for d := 2; d <= 10; d++ {
		s.Day++
		s.StageDay = d
		lai := m.Derive(s, 22., 18.).LAI
		if lai > prev+1e-9 {
			t.Fatalf("maturation LAI rose on stage day %d: %v > %v", d, lai, prev)
		}
		prev = lai
	}
}

func TestFactorBounds(t *testing.T) {
	m := DefaultModel()
	for _, tavg := range []float64{-5., 4., 18., 22., 30., 35., 45.} {
		f := m.TempFactor(tavg, Exponential)
		if f < .1 || f > 2. {
			t.Errorf("TempFactor(%v) = %v out of [0.1, 2]", tavg, f)
		}
	}
	for _, srad := range []float64{0., 2., 10., 18., 30.} {
		f := m.DLIFactor(srad, Exponential)
		if f < .1 || f > 1.8 {
			t.Errorf("DLIFactor(%v) = %v out of bounds", srad, f)
		}
	}
}

func TestDetectTransition(t *testing.T) {
	// flat establishment plateau then steep rise: advisory only, but the
	// rise should register
	lai := []float64{.3, .31, .32, .33, .35, .5, .8, 1.2, 1.7, 2.3}
	kind, ok := DetectTransition(lai, 5)
	if !ok || kind != "establishment_to_exponential" {
		t.Fatalf("got %q %v", kind, ok)
	}

	// steady plateau reports nothing
	if kind, ok := DetectTransition([]float64{3., 3.01, 3.02, 3.01, 3.02, 3.03, 3.02}, 5); ok {
		t.Fatalf("plateau misreported as %q", kind)
	}

	// short series reports nothing
	if _, ok := DetectTransition([]float64{1., 2.}, 5); ok {
		t.Fatal("short series must not report")
	}
}
