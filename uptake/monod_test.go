package uptake

import (
	"math"
	"testing"

	"github.com/hydrosol/hydrosim/growth"
)

func gates() Gates {
	return Gates{Capacity: 2., RootEff: .8, Surface: 600., EnvFactor: 1., Volume: 100.}
}

func TestMonodDeterministic(t *testing.T) {
	k := DefaultTable()["N-NO3"][growth.Exponential]
	a, _ := Monod(150., k, gates())
	for i := 0; i < 10; i++ {
		if b, _ := Monod(150., k, gates()); b != a {
			t.Fatalf("repeated call differs: %v != %v", b, a)
		}
	}
}

func TestMonodSaturation(t *testing.T) {
	k := DefaultTable()["N-NO3"][growth.Exponential]
	g := gates()
	lo, _ := Monod(20., k, g)
	mid, _ := Monod(100., k, g)
	hi, _ := Monod(250., k, g)
	if !(lo < mid && mid < hi) {
		t.Fatalf("rate not monotone in concentration: %v %v %v", lo, mid, hi)
	}
	// saturating: the marginal gain shrinks
	if hi-mid >= mid-lo {
		t.Fatalf("response not saturating: %v %v %v", lo, mid, hi)
	}
	// bounded by Vmax times the gate product
	max := k.Vmax * g.Capacity * k.Efficiency * g.EnvFactor * g.RootEff * 2.
	if hi > max {
		t.Fatalf("rate %v exceeds kinetic ceiling %v", hi, max)
	}
}

func TestMonodMinimumThreshold(t *testing.T) {
	k := DefaultTable()["N-NO3"][growth.Exponential] // MinConc 10
	r, d := Monod(5., k, gates())
	if r != 0. {
		t.Fatalf("uptake below minimum threshold must be zero, got %v", r)
	}
	if d.Limitation != "minimum_threshold" {
		t.Fatalf("limitation = %q", d.Limitation)
	}
}

func TestMonodLuxuryDamping(t *testing.T) {
	k := DefaultTable()["K"][growth.Exponential] // MaxConc 400
	g := gates()
	at, _ := Monod(400., k, g)
	over, d := Monod(401., k, g)
	if d.Limitation != "luxury_consumption" {
		t.Fatalf("limitation = %q", d.Limitation)
	}
	// damped to ~70% of the undamped curve
	undamped := k.Vmax * 401. / (k.Km + 401.) * g.Capacity * k.Efficiency * g.EnvFactor * g.RootEff * math.Min(2., g.Surface/500.)
	if math.Abs(over-undamped*.7) > 1e-9 {
		t.Fatalf("luxury damping: got %v, want %v", over, undamped*.7)
	}
	if over >= at {
		t.Fatalf("damped rate %v should not exceed the rate at the bound %v", over, at)
	}
}

func TestMonodVolumeStability(t *testing.T) {
	k := DefaultTable()["N-NO3"][growth.Exponential]
	g := gates()
	full, _ := Monod(150., k, g)
	g.Volume = 25.
	low, dl := Monod(150., k, g)
	if math.Abs(low-full*.25) > 1e-9 {
		t.Fatalf("quarter volume should quarter the rate: %v vs %v", low, full)
	}
	if dl.VolStability != .25 {
		t.Fatalf("vol stability = %v", dl.VolStability)
	}
}

func TestDetect(t *testing.T) {
	tbl := DefaultTable()

	t.Run("prediction error", func(t *testing.T) {
		fs := Detect(3,
			map[string]float64{"N-NO3": 200.},
			map[string]float64{"N-NO3": 140.},
			map[string]Diag{"N-NO3": {DepletionDays: 50.}}, tbl)
		if len(fs) != 1 || fs[0].Kind != "prediction_error" || fs[0].Day != 3 {
			t.Fatalf("faults = %+v", fs)
		}
	})

	t.Run("rapid depletion", func(t *testing.T) {
		fs := Detect(7,
			map[string]float64{"K": 300.},
			map[string]float64{"K": 298.},
			map[string]Diag{"K": {DepletionDays: 2.}}, tbl)
		if len(fs) != 1 || fs[0].Kind != "rapid_depletion" {
			t.Fatalf("faults = %+v", fs)
		}
	})

	t.Run("deficiency and excess", func(t *testing.T) {
		fs := Detect(9,
			map[string]float64{"Ca": 5., "Mg": 120.},
			map[string]float64{"Ca": 5., "Mg": 120.},
			map[string]Diag{"Ca": {DepletionDays: 60.}, "Mg": {DepletionDays: 60.}}, tbl)
		kinds := map[string]string{}
		for _, f := range fs {
			kinds[f.Nutrient] = f.Kind
		}
		if kinds["Ca"] != "deficiency" {
			t.Fatalf("Ca fault = %q", kinds["Ca"])
		}
		if kinds["Mg"] != "excess" {
			t.Fatalf("Mg fault = %q", kinds["Mg"])
		}
	})

	t.Run("stable ordering", func(t *testing.T) {
		pred := map[string]float64{"Mg": 120., "Ca": 5., "K": 300.}
		act := map[string]float64{"Mg": 120., "Ca": 5., "K": 298.}
		diags := map[string]Diag{
			"Mg": {DepletionDays: 60.}, "Ca": {DepletionDays: 60.}, "K": {DepletionDays: 2.},
		}
		first := Detect(4, pred, act, diags, tbl)
		for i := 0; i < 20; i++ {
			fs := Detect(4, pred, act, diags, tbl)
			if len(fs) != len(first) {
				t.Fatalf("fault count varies: %d != %d", len(fs), len(first))
			}
			for j := range fs {
				if fs[j] != first[j] {
					t.Fatalf("fault order varies at %d: %+v != %+v", j, fs[j], first[j])
				}
			}
		}
		for i := 1; i < len(first); i++ {
			if first[i].Nutrient < first[i-1].Nutrient {
				t.Fatalf("faults not in nutrient order: %+v", first)
			}
		}
	})

	t.Run("clean day", func(t *testing.T) {
		fs := Detect(1,
			map[string]float64{"N-NO3": 199.},
			map[string]float64{"N-NO3": 198.},
			map[string]Diag{"N-NO3": {DepletionDays: 80.}}, tbl)
		if len(fs) != 0 {
			t.Fatalf("unexpected faults %+v", fs)
		}
	})
}
