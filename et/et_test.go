package et

import (
	"math"
	"testing"
)

func TestReferenceETDeterministic(t *testing.T) {
	rn := NetRadiation(18., 27., 17., 70., 0.)
	a := ReferenceET(rn, 22., 17., 27., 2., 70., 100.)
	for i := 0; i < 10; i++ {
		if b := ReferenceET(rn, 22., 17., 27., 2., 70., 100.); b != a {
			t.Fatalf("repeated call differs: %v != %v", b, a)
		}
	}
	if a <= 0. {
		t.Fatalf("expected positive ETo for a clear warm day, got %v", a)
	}
	if a > 15. {
		t.Fatalf("ETo %v mm/d unphysically large", a)
	}
}

func TestReferenceETFloors(t *testing.T) {
	// degenerate negative net radiation, cold and still
	if e := ReferenceET(-5., 2., 0., 4., 0., 100., 100.); e < 0. {
		t.Fatalf("ETo must floor at 0, got %v", e)
	}
	// zero wind must not divide by zero
	if e := ReferenceET(10., 22., 17., 27., 0., 70., 100.); math.IsNaN(e) || math.IsInf(e, 0) {
		t.Fatalf("non-finite ETo at zero wind: %v", e)
	}
}

func TestNetRadiation(t *testing.T) {
	rn := NetRadiation(18., 27., 17., 70., 0.)
	if rn <= 0. || rn >= 18. {
		t.Fatalf("net radiation %v out of range (0, srad)", rn)
	}
	if n := NetRadiation(0., 10., 2., 90., 0.); n < 0. {
		t.Fatalf("net radiation must floor at 0, got %v", n)
	}
}

func TestMakkink(t *testing.T) {
	e := Makkink(18., 22.)
	if e < 2. || e > 6. {
		t.Fatalf("Makkink(18 MJ/m², 22 °C) = %v mm/d, want 2-6", e)
	}
	if d := Makkink(8., 22.); d >= e {
		t.Fatalf("dimmer day should evaporate less: %v >= %v", d, e)
	}
	if f := Makkink(18., 0.); f != 0. {
		t.Fatalf("freezing-point Makkink = %v, want 0", f)
	}
}

func TestCropET(t *testing.T) {
	etc, tr := CropET(4., .85, .9, 3., .25)
	want := .9 * .85 * 4.
	if math.Abs(etc-want) > 1e-12 {
		t.Fatalf("etc = %v, want %v", etc, want)
	}
	if tr <= 0. {
		t.Fatalf("transpiration must be positive, got %v", tr)
	}

	// sparse canopy uses the minimum adjustment
	_, trLow := CropET(4., .85, .9, 0., .05)
	if trLow <= 0. {
		t.Fatalf("sparse-canopy transpiration must stay positive, got %v", trLow)
	}
	if trLow >= tr {
		t.Fatalf("sparse canopy should transpire less: %v >= %v", trLow, tr)
	}

	// closed canopy bound
	_, trHi := CropET(4., .85, .9, 6., 2.)
	if a := trHi / (0.9 * 0.85 * 4.); a > 2.+1e-12 {
		t.Fatalf("adjustment %v exceeds closed-canopy bound", a)
	}
}

func TestDemand(t *testing.T) {
	if d := Demand(2.5, 10.); d != 25. {
		t.Fatalf("2.5 mm over 10 m² should be 25 L, got %v", d)
	}
	if d := Demand(-1., 10.); d != 0. {
		t.Fatalf("negative depth must clamp to 0, got %v", d)
	}
}
