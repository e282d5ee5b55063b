package plant

import (
	"math"
	"testing"

	"github.com/hydrosol/hydrosim/growth"
	"github.com/hydrosol/hydrosim/roots"
)

func TestNewBiomass(t *testing.T) {
	b := NewBiomass(24, 5.)
	if b.FreshWeight != 120. {
		t.Fatalf("fresh weight = %v, want 120", b.FreshWeight)
	}
	dw := 120. / freshToDry
	if math.Abs(b.TotalDry()-dw) > 1e-9 {
		t.Fatalf("dry pools %v do not sum to %v", b.TotalDry(), dw)
	}
	if math.Abs(b.Shoot+b.Root-b.Structural) > 1e-9 {
		t.Fatalf("shoot %v + root %v != structural %v", b.Shoot, b.Root, b.Structural)
	}
}

func TestAllocatePoolsNonDecreasing(t *testing.T) {
	p := DefaultAllocParams()
	b := NewBiomass(24, 5.)
	for d := 0; d < 40; d++ {
		prev := b
		b, _, _ = p.Allocate(b, 5., .5, 1., growth.Exponential)
		if b.Structural < prev.Structural {
			t.Fatalf("day %d: structural pool shrank", d)
		}
		if b.Shoot < prev.Shoot || b.Root < prev.Root {
			t.Fatalf("day %d: partition pool shrank", d)
		}
		if b.CarbonStore < 0. || b.NitrogenStore < 0. {
			t.Fatalf("day %d: negative store", d)
		}
	}
	if b.FreshWeight != b.Structural*freshToDry {
		t.Fatalf("fresh weight out of step with structural mass")
	}
}

func TestAllocateNitrogenLimited(t *testing.T) {
	p := DefaultAllocParams()
	b := NewBiomass(24, 5.)
	b.NitrogenStore = 0.

	rich, _, _ := p.Allocate(b, 10., 1., 1., growth.Exponential)
	poor, _, _ := p.Allocate(b, 10., .01, 1., growth.Exponential)
	if poor.Structural >= rich.Structural {
		t.Fatalf("nitrogen scarcity should limit growth: %v >= %v", poor.Structural, rich.Structural)
	}
}

func TestAllocateRootShare(t *testing.T) {
	p := DefaultAllocParams()
	b := NewBiomass(24, 5.)

	_, shoot, root := p.Allocate(b, 10., 1., 1., growth.Exponential)
	if tot := shoot + root; tot > 0. {
		if share := root / tot; math.Abs(share-.20) > 1e-9 {
			t.Fatalf("unstressed exponential root share = %v, want 0.20", share)
		}
	}

	// full stress adds the bonus
	_, shoot, root = p.Allocate(b, 10., 1., 0., growth.Exponential)
	if share := root / (shoot + root); math.Abs(share-.35) > 1e-9 {
		t.Fatalf("stressed root share = %v, want 0.35", share)
	}

	// the cap binds
	p.RootShare[growth.Establishment] = .45
	_, shoot, root = p.Allocate(b, 10., 1., 0., growth.Establishment)
	if share := root / (shoot + root); share > p.MaxRootShare+1e-9 {
		t.Fatalf("root share %v exceeds cap %v", share, p.MaxRootShare)
	}
}

func TestUptakeCapacity(t *testing.T) {
	b := NewBiomass(24, 5.)
	rs := roots.NewSystem(roots.NFT, 24, 5.)
	withRoots := b.UptakeCapacity(&rs)
	if math.Abs(withRoots-rs.EffectiveSurface()*.01) > 1e-9 {
		t.Fatalf("capacity %v not derived from effective surface", withRoots)
	}
	if fallback := b.UptakeCapacity(nil); fallback <= 0. {
		t.Fatalf("biomass fallback capacity = %v", fallback)
	}
}

func TestPPFD(t *testing.T) {
	p := PPFD(18., 16.)
	// 18 MJ over 16 h at 2.1 mol/MJ ≈ 656 µmol/m²/s
	if p < 600. || p > 700. {
		t.Fatalf("PPFD = %v, want ~656", p)
	}
	if PPFD(18., 0.) != 0. {
		t.Fatal("zero photoperiod must yield zero PPFD")
	}
}

func TestAssimilation(t *testing.T) {
	p := DefaultPhotoParams()

	a := p.Assimilation(650., 400., 22., 3.)
	if a <= 0. {
		t.Fatalf("daylight assimilation = %v, want positive", a)
	}

	// light response saturates but stays monotone
	dim := p.Assimilation(100., 400., 22., 3.)
	bright := p.Assimilation(1200., 400., 22., 3.)
	if !(dim < a && a <= bright) {
		t.Fatalf("light response not monotone: %v %v %v", dim, a, bright)
	}

	// CO2 enrichment helps
	if e := p.Assimilation(650., 1200., 22., 3.); e <= a {
		t.Fatalf("CO2 enrichment should raise assimilation: %v <= %v", e, a)
	}

	// dark canopy floors at zero
	if n := p.Assimilation(0., 400., 22., 3.); n != 0. {
		t.Fatalf("night assimilation = %v, want 0", n)
	}

	// determinism
	if b := p.Assimilation(650., 400., 22., 3.); b != a {
		t.Fatalf("repeated call differs: %v != %v", b, a)
	}
}
