package plant

import "math"

// PhotoParams : simplified Farquhar-type photosynthesis parameters
type PhotoParams struct {
	Kc        float64 // Michaelis constant for CO2 [µmol/mol]
	Ko        float64 // Michaelis constant for O2 [mmol/mol]
	GammaStar float64 // CO2 compensation point [µmol/mol]
	Jmax25    float64 // max electron transport at 25°C [µmol/m²/s]
	Vcmax25   float64 // max carboxylation at 25°C [µmol/m²/s]
	Theta     float64 // light-response curvature
	Alpha     float64 // quantum efficiency [mol CO2/mol photons]
	Rd25      float64 // dark respiration at 25°C [µmol/m²/s]
	EaJ       float64 // activation energies [J/mol]
	EaV       float64
	EaR       float64
}

// DefaultPhotoParams returns the leaf-crop parameterization.
func DefaultPhotoParams() PhotoParams {
	return PhotoParams{
		Kc: 404., Ko: 248., GammaStar: 36.9,
		Jmax25: 500., Vcmax25: 250.,
		Theta: 0.85, Alpha: 0.2, Rd25: 0.1,
		EaJ: 30000., EaV: 60000., EaR: 46390.,
	}
}

const rGas = 8.314 // J/mol/K

func arrhenius(rate25, ea, tempC float64) float64 {
	tk := tempC + 273.15
	return rate25 * math.Exp(ea*(tk-298.15)/(298.15*rGas*tk))
}

// PPFD converts daily solar radiation [MJ/m²/day] to mean photosynthetic
// photon flux density over the photoperiod [µmol/m²/s], at 2.1 mol
// photons per MJ global radiation.
func PPFD(srad, photoperiodHours float64) float64 {
	if photoperiodHours <= 0 {
		return 0.
	}
	return srad * 2.1 * 1e6 / (photoperiodHours * 3600.)
}

// Assimilation computes daily gross carbon gain [g C/m² ground/day] from
// PPFD, CO2, temperature and LAI: min of the Rubisco- and light-limited
// rates, net of dark respiration, floored at zero.
func (p PhotoParams) Assimilation(ppfd, co2ppm, tempC, lai float64) float64 {
	ci := co2ppm
	vcmax := arrhenius(p.Vcmax25, p.EaV, tempC)
	jmax := arrhenius(p.Jmax25, p.EaJ, tempC)
	rd := arrhenius(p.Rd25, p.EaR, tempC)

	ac := vcmax * (ci - p.GammaStar) / (ci + p.Kc*(1.+210./p.Ko)) // 210 mmol/mol ambient O2

	i2 := p.Alpha * ppfd
	disc := (i2+jmax)*(i2+jmax) - 4.*p.Theta*i2*jmax
	if disc < 0 {
		disc = 0
	}
	j := (i2 + jmax - math.Sqrt(disc)) / (2. * p.Theta)
	aj := j * (ci - p.GammaStar) / (4. * (ci + 2.*p.GammaStar))

	aNet := math.Min(ac, aj) - rd // µmol CO2/m² leaf/s
	gC := aNet * 1.201e-5 * 86400. * lai
	return math.Max(0., gC)
}
