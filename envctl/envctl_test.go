package envctl

import (
	"math"
	"strings"
	"testing"
)

func TestVPD(t *testing.T) {
	// Magnus at 22 °C: es ≈ 2.645 kPa; 70% RH leaves ≈ 0.793 kPa deficit
	if v := VPD(22., 70.); math.Abs(v-.793) > .01 {
		t.Fatalf("VPD(22,70) = %v, want ~0.793", v)
	}
	if v := VPD(22., 100.); v != 0. {
		t.Fatalf("saturated air VPD = %v, want 0", v)
	}
	if v := VPD(10., 50.); v <= 0. {
		t.Fatalf("unsaturated air VPD = %v, want positive", v)
	}
}

func TestOptimalHumidity(t *testing.T) {
	rh := OptimalHumidity(22., .8)
	if v := VPD(22., rh); math.Abs(v-.8) > 1e-6 {
		t.Fatalf("optimal RH %v does not realize the target VPD: %v", rh, v)
	}
	if rh := OptimalHumidity(5., .8); rh < 30.-1e-9 {
		t.Fatalf("cold-air RH %v below lower clamp", rh)
	}
	if rh := OptimalHumidity(40., .1); rh > 95.+1e-9 {
		t.Fatalf("hot-air RH %v above upper clamp", rh)
	}
}

func TestVPDStress(t *testing.T) {
	for _, tc := range []struct {
		name     string
		vpd      float64
		lvl      string
		transpLo float64
	}{
		{"dead band", .8, "optimal", 1.},
		{"dead band edge", .9, "optimal", 1.},
		{"humid", .5, "high_humidity", .4},
		{"saturated", .1, "severe_humidity", .4},
		{"dry", 1.2, "water_stress", .3},
		{"desiccating", 2.5, "severe_drought", .3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			transp, photo, lvl := VPDStress(tc.vpd, .8, .1)
			if lvl != tc.lvl {
				t.Fatalf("level = %q, want %q", lvl, tc.lvl)
			}
			if transp < tc.transpLo-1e-9 || transp > 1.+1e-9 {
				t.Fatalf("transpiration factor %v out of range", transp)
			}
			if photo <= 0. || photo > 1.+1e-9 {
				t.Fatalf("photosynthesis factor %v out of range", photo)
			}
			if lvl == "optimal" && (transp != 1. || photo != 1.) {
				t.Fatal("dead band must be neutral")
			}
		})
	}

	// humid penalty hits transpiration harder than photosynthesis
	transp, photo, _ := VPDStress(.4, .8, .1)
	if transp >= photo {
		t.Fatalf("humid stress: transp %v should undercut photo %v", transp, photo)
	}
}

func TestCO2Factor(t *testing.T) {
	if f := CO2Factor(400., 22., 650.); math.Abs(f-1.) > 1e-9 {
		t.Fatalf("ambient CO2 factor = %v, want 1", f)
	}
	f := CO2Factor(1200., 22., 650.)
	if f <= 1. {
		t.Fatalf("enrichment factor = %v, want > 1", f)
	}
	if f2 := CO2Factor(2000., 22., 650.); f2 <= f {
		t.Fatalf("Michaelis response not monotone: %v <= %v", f2, f)
	}
	if f := CO2Factor(1200., 22., 0.); math.Abs(f-1.) > 1e-9 {
		t.Fatalf("dark factor = %v, want 1", f)
	}
}

func TestControllerStep(t *testing.T) {
	c := NewController(DefaultSetpoints())

	t.Run("state record untouched", func(t *testing.T) {
		st := State{HumidityIntegral: 3., CO2Integral: 7.}
		before := st
		_, ns := c.Step(st, 22., 50., 400., true)
		if st != before {
			t.Fatal("input state was mutated")
		}
		if ns == before {
			t.Fatal("successor state did not advance")
		}
	})

	t.Run("humidify dry air", func(t *testing.T) {
		a, _ := c.Step(State{}, 22., 40., 1200., true)
		if a.HumidifierPower <= 0. || a.DehumidifierPower != 0. {
			t.Fatalf("dry air actions: %+v", a)
		}
		if !strings.HasPrefix(a.HumidityAction, "humidify") {
			t.Fatalf("humidity action = %q", a.HumidityAction)
		}
	})

	t.Run("dehumidify wet air", func(t *testing.T) {
		a, _ := c.Step(State{}, 22., 95., 1200., true)
		if a.DehumidifierPower <= 0. || a.HumidifierPower != 0. {
			t.Fatalf("wet air actions: %+v", a)
		}
	})

	t.Run("integral accumulates", func(t *testing.T) {
		st := State{}
		var a1, a2 Actions
		a1, st = c.Step(st, 22., 50., 1200., true)
		a2, st = c.Step(st, 22., 50., 1200., true)
		if st.HumidityIntegral == 0. {
			t.Fatal("humidity integral never accumulated")
		}
		if a2.HumidifierPower < a1.HumidifierPower {
			t.Fatalf("persistent error should not shrink output: %v < %v", a2.HumidifierPower, a1.HumidifierPower)
		}
	})

	t.Run("inject only in light", func(t *testing.T) {
		a, _ := c.Step(State{}, 22., 70., 400., true)
		if a.CO2Injection <= 0. {
			t.Fatalf("photoperiod shortfall not injected: %+v", a)
		}
		if a.CO2Injection > c.MaxInjection {
			t.Fatalf("injection %v exceeds cap", a.CO2Injection)
		}
		a, _ = c.Step(State{}, 22., 70., 400., false)
		if a.CO2Injection != 0. {
			t.Fatalf("dark-period injection %v", a.CO2Injection)
		}
	})

	t.Run("ventilate excess", func(t *testing.T) {
		a, _ := c.Step(State{}, 22., 70., 900., false)
		if a.VentilationBoost <= 0. || a.VentilationBoost > 2. {
			t.Fatalf("ventilation boost = %v", a.VentilationBoost)
		}
	})

	t.Run("energy always metered", func(t *testing.T) {
		a, _ := c.Step(State{}, 22., OptimalHumidity(22., .8), 1200., true)
		if a.EnergyKWh <= 0. {
			t.Fatalf("energy draw = %v", a.EnergyKWh)
		}
		if a.Priority != "maintain_conditions" {
			t.Fatalf("priority = %q", a.Priority)
		}
	})
}

func TestControllerApply(t *testing.T) {
	c := NewController(DefaultSetpoints())

	rh, co2 := c.Apply(Actions{HumidifierPower: 100.}, 50., 400.)
	if rh < c.Set.MinHumidity || rh > c.Set.MaxHumidity {
		t.Fatalf("humidified RH %v outside window", rh)
	}
	if co2 < c.Set.AmbientCO2 {
		t.Fatalf("CO2 %v below ambient", co2)
	}

	_, co2 = c.Apply(Actions{CO2Injection: 50.}, 70., 1100.)
	if co2 > c.Set.TargetCO2 {
		t.Fatalf("injected CO2 %v exceeds target", co2)
	}

	_, co2 = c.Apply(Actions{VentilationBoost: 2.}, 70., 500.)
	if co2 < c.Set.AmbientCO2 {
		t.Fatalf("ventilated CO2 %v below ambient", co2)
	}

	// idle CO2 decays toward ambient
	_, co2 = c.Apply(Actions{}, 70., 800.)
	if co2 >= 800. || co2 < c.Set.AmbientCO2 {
		t.Fatalf("idle CO2 decay gave %v", co2)
	}
}
