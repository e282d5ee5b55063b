package et

import "github.com/maseology/goHydro/pet"

// Makkink coefficients (Makkink, 1957).
const (
	makkinkAlpha = .61
	makkinkBeta  = -1.2e-4 // [m/d]
)

// Makkink radiation-based reference evapotranspiration [mm/d], an
// alternative to Penman-Monteith when wind and humidity records are
// untrustworthy. srad [MJ/m²/d], tavg [°C].
func Makkink(srad, tavg float64) float64 {
	e := pet.Makkink(srad, tavg, 101300., makkinkAlpha, makkinkBeta)
	if e < 0. {
		return 0.
	}
	return e * 1000. // m/d to mm/d
}
