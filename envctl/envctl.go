// Package envctl models greenhouse aerial conditions. Vapour pressure
// deficit and CO2 enrichment feed the canopy and photosynthesis routines;
// the controller in this package steers humidity and CO2 toward setpoints.
package envctl

import "math"

// SatVP saturation vapour pressure [kPa] at temperature tc [°C] (Magnus).
func SatVP(tc float64) float64 {
	return 0.6108 * math.Exp(17.27*tc/(tc+237.3))
}

// VPD vapour pressure deficit [kPa] at air temperature tc [°C] and
// relative humidity rh [%].
func VPD(tc, rh float64) float64 {
	es := SatVP(tc)
	ea := es * rh / 100.
	if v := es - ea; v > 0. {
		return v
	}
	return 0.
}

// OptimalHumidity returns the relative humidity [%] that yields the target
// VPD at air temperature tc, held to 30-95%.
func OptimalHumidity(tc, targetVPD float64) float64 {
	es := SatVP(tc)
	rh := (es - targetVPD) / es * 100.
	return math.Max(30., math.Min(95., rh))
}

// VPDStress maps the current VPD onto transpiration and photosynthesis
// multipliers about a dead band. lvl names the stress regime.
func VPDStress(vpd, optimal, tol float64) (transp, photo float64, lvl string) {
	switch {
	case vpd >= optimal-tol && vpd <= optimal+tol:
		return 1., 1., "optimal"
	case vpd < optimal-tol: // humid air suppresses transpiration
		d := optimal - tol - vpd
		transp = math.Max(.4, 1.-d*.8)
		photo = math.Max(.6, 1.-d*.5)
		if vpd < .3 {
			return transp, photo, "severe_humidity"
		}
		return transp, photo, "high_humidity"
	default: // dry air closes stomata
		x := vpd - (optimal + tol)
		transp = math.Max(.3, 1.-x*1.2)
		photo = math.Max(.4, 1.-x*.8)
		if vpd > 1.5 {
			return transp, photo, "severe_drought"
		}
		return transp, photo, "water_stress"
	}
}

// CO2Factor photosynthetic enhancement relative to 400 ppm ambient,
// Michaelis response modulated by temperature and light level
// (ppfd [μmol/m²/s]).
func CO2Factor(co2ppm, tc, ppfd float64) float64 {
	tf := 1. + (tc-20.)*.02
	tf = math.Max(.5, math.Min(1.5, tf))
	lf := ppfd / (ppfd + 200.)
	vmax := 2. * tf * lf
	km := 800. * (1. - tf*.2)
	base := vmax * 400. / (km + 400.)
	if base <= 0. {
		return 1.
	}
	return vmax * co2ppm / (km + co2ppm) / base
}
