package roots

import "math"

// SolutionTemp estimates the circulating-solution temperature from air
// temperature and solar gain with a tank thermal-mass lag. prev is the
// previous day's solution temperature (pass air temperature on day one).
func SolutionTemp(airTemp, srad, tankVolume, prev float64) float64 {
	mass := math.Min(1., math.Max(0.1, tankVolume/1000.))
	target := airTemp + srad*0.15
	blend := math.Min(1., 0.3/mass)
	t := prev + (target-prev)*blend
	return math.Max(10., math.Min(35., t))
}

// RZTFactor is the root-zone-temperature growth response: linear rise to an
// optimum ~3°C above air temperature, fast decline beyond it.
func RZTFactor(rzt, airTemp float64) float64 {
	opt := math.Max(15., math.Min(35., airTemp+3.))
	var f float64
	if rzt <= opt {
		f = 1. - (opt-rzt)*0.08
	} else {
		f = 1. - (rzt-opt)*0.15
	}
	return math.Max(0.1, math.Min(1.2, f))
}
