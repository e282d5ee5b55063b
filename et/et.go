// Package et computes reference and crop evapotranspiration for protected
// cropping. The reference surface follows FAO-56 Penman-Monteith; crop
// demand scales the reference by a basal coefficient and canopy geometry.
package et

import "math"

const (
	lambda  = 2.45     // latent heat of vaporization [MJ/kg]
	cp      = 1.013e-3 // specific heat of air [MJ/kg/°C]
	epsilon = 0.622    // molecular weight ratio water/dry air
	sigma   = 4.903e-9 // Stefan-Boltzmann [MJ/K4/m²/d]
)

func satVP(tc float64) float64 {
	return 0.6108 * math.Exp(17.27*tc/(tc+237.3))
}

// NetRadiation [MJ/m²/d] from measured shortwave srad [MJ/m²/d].
// Clear-sky radiation is approximated as 1.35 srad; albedo defaults to the
// 0.23 reference crop when zero is given.
func NetRadiation(srad, tmax, tmin, rh, albedo float64) float64 {
	if albedo <= 0. {
		albedo = 0.23
	}
	ea := satVP(tmin) * rh / 100.
	cf := 1.
	if rso := srad * 1.35; rso > 0. {
		cf = math.Min(1., srad/rso)
	}
	rns := (1. - albedo) * srad
	tk4 := (math.Pow(tmax+273.16, 4.) + math.Pow(tmin+273.16, 4.)) / 2.
	rnl := sigma * tk4 * (0.34 - 0.14*math.Sqrt(math.Max(0., ea))) * (1.35*cf - 0.35)
	return math.Max(0., rns-rnl)
}

// ReferenceET FAO-56 Penman-Monteith reference evapotranspiration [mm/d].
// rn net radiation [MJ/m²/d], u wind at 2 m [m/s], rh [%], z elevation [m].
func ReferenceET(rn, tavg, tmin, tmax, u, rh, z float64) float64 {
	p := 101.3 * math.Pow((293.-0.0065*z)/293., 5.26)
	gamma := cp * p / (epsilon * lambda)
	delta := 4098. * satVP(tavg) / math.Pow(tavg+237.3, 2.)
	es := (satVP(tmax) + satVP(tmin)) / 2.
	vpd := es - es*rh/100.
	num := 0.408*delta*rn + gamma*900./(tavg+273.)*u*vpd
	den := delta + gamma*(1.+0.34*u)
	return math.Max(0., num/den)
}

// CropET scales the reference rate to the crop: etc = phi kcb eto, with
// transpiration tr = A etc where A folds leaf area and stand height. Both
// returned in mm/d.
func CropET(eto, kcb, phi, lai, height float64) (etc, tr float64) {
	laif := .05
	if lai > 0. {
		laif = math.Min(1.2, lai/4.)
	}
	hf := 1. + height*.15
	etc = phi * kcb * eto
	a := laif * hf
	if lai > 2.5 { // closed canopy transpires harder
		a = math.Max(.3, math.Min(a, 2.))
	} else {
		a = math.Max(.1, math.Min(a, 1.5))
	}
	tr = a * etc
	if etc < 0. {
		etc = 0.
	}
	if tr < 0. {
		tr = 0.
	}
	return
}

// Demand converts a transpiration depth [mm/d] over a growing area [m²]
// to a volumetric draw [L/d].
func Demand(trmm, aream2 float64) float64 {
	return math.Max(0., trmm*aream2)
}
