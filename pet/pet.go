// Package pet estimates potential evapotranspiration from daily temperature
// extremes using a per-run selectable formulation. All estimates are daily
// totals in cm of water; sub-daily steps are distributed with the Fortin-Girard
// hourly weights.
package pet

import (
	"math"

	"github.com/maseology/hsami/solar"
)

// Physio basin physiography needed by the radiation-based formulations.
type Physio struct {
	LatitudeRad float64 // mean basin latitude [rad]
	Altitude    float64 // mean basin elevation [m asl]
	Albedo      float64 // ground albedo [-]
}

// Method a daily potential evapotranspiration formulation [cm/d].
type Method func(doy int, tmin, tmax float64, ph Physio) float64

// hourly weights used to spread a daily total over sub-daily steps
// (Fortin and Girard, 1970)
var weights = [24]float64{
	.005, .005, .005, .005, .005, .006, .011, .024, .040, .054, .070, .084,
	.096, .104, .109, .108, .099, .078, .050, .020, .007, .005, .005, .005,
}

// StepFraction the share of the daily total attributed to intra-day step pas
// (1-based) of a day divided into stepsPerDay steps.
func StepFraction(pas, stepsPerDay int) float64 {
	i0 := (pas - 1) * 24 / stepsPerDay
	i1 := pas * 24 / stepsPerDay
	s := 0.
	for i := i0; i < i1; i++ {
		s += weights[i]
	}
	return s
}

// New returns the formulation named by code. Defaults to the temperature-index
// formulation when code is empty; returns nil for an unknown code.
func New(code string) Method {
	switch code {
	case "", "hsami":
		return Hsami
	case "blaney-criddle":
		return BlaneyCriddle
	case "hamon":
		return Hamon
	case "linacre":
		return Linacre
	case "kharrufa":
		return Kharrufa
	case "mohyse":
		return Mohyse
	case "romanenko":
		return Romanenko
	case "makkink":
		return Makkink
	case "turc":
		return Turc
	case "mcguinness-bordne":
		return McGuinnessBordne
	case "abtew":
		return Abtew
	case "hargreaves":
		return Hargreaves
	case "priestley-taylor":
		return PriestleyTaylor
	default:
		return nil
	}
}

// Hsami the original Hydro-Québec empirical temperature-index formulation
// (Fahrenheit form folded into the constants).
func Hsami(doy int, tmin, tmax float64, ph Physio) float64 {
	e := 0.00065 * 2.54 * 9. / 5. * (tmax - tmin) * math.Exp(0.019*(tmin*9./5.+tmax*9./5.+64.))
	return math.Max(0., e)
}

// BlaneyCriddle after Xu and Singh (2001), k=0.85.
func BlaneyCriddle(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	p := solar.DaylightFraction(ph.LatitudeRad, doy)
	return math.Max(0., 0.85*p*(0.46*ta+8.13)/10.)
}

// Hamon after Haith and Shoemaker (1987).
func Hamon(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	dl := solar.DayLength(doy, ph.LatitudeRad)
	es := solar.SatVapourPressure(ta)
	return math.Max(0., 2.1*dl*dl*es/(ta+273.3)/10.)
}

// Linacre zero below freezing; latitude back in degrees for this formulation.
func Linacre(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	if ta < 0. {
		return 0.
	}
	th := ta + 0.006*ph.Altitude
	td := 0.38 + tmax - 0.018*tmax*tmax + 1.4 + tmin - 5. // Linacre dew point estimate
	lat := ph.LatitudeRad * 180. / math.Pi
	return math.Max(0., (500.*th/(100.-lat)+15.*(ta-td))/(80.-ta)/10.)
}

// Kharrufa after Xu and Singh (2001); mean temperature floored at zero.
func Kharrufa(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := math.Max(0., (tmin+tmax)/2.)
	p := solar.DaylightFraction(ph.LatitudeRad, doy)
	return 0.34 * p * math.Pow(ta, 1.3) / 10.
}

// Mohyse after Fortin and Turcotte (2007).
func Mohyse(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	delta := solar.Declination(doy)
	return math.Max(0., 1./math.Pi*math.Acos(-math.Tan(ph.LatitudeRad)*math.Tan(delta))*math.Exp(17.3*ta/(238.+ta))/10.)
}

// Romanenko vapour-pressure-deficit form (Oudin, 2004).
func Romanenko(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	ea := solar.SatVapourPressure(ta)
	ed := solar.SatVapourPressure(tmin) // Td≈Tmin under humid cover
	return math.Max(0., 0.0045*math.Pow(1.+ta/25., 2.)*(1.-ed/ea)*100.)
}

// Makkink radiation-slope form.
func Makkink(doy int, tmin, tmax float64, ph Physio) float64 {
	const psi = 0.066 // psychrometric constant [kPa/°C]
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	rg := solar.Global(re, ph.LatitudeRad, doy, tmin, tmax)
	m := solar.VapourPressureSlope(tmin, tmax)
	lam := solar.LatentHeat(tmin, tmax)
	return math.Max(0., (m/(m+psi)*(0.61*rg/lam)-0.12)/10.)
}

// Turc zero below freezing (McGuinness and Bordne, 1972, SI form).
func Turc(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	if ta < 0. {
		return 0.
	}
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	rg := solar.Global(re, ph.LatitudeRad, doy, tmin, tmax)
	return math.Max(0., 0.35*(rg+2.094)*(ta/(ta+15.))/10.)
}

// McGuinnessBordne after Oudin (2004).
func McGuinnessBordne(doy int, tmin, tmax float64, ph Physio) float64 {
	const rhow = 1000. // water density [kg/m³]
	ta := (tmin + tmax) / 2.
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	rg := solar.Global(re, ph.LatitudeRad, doy, tmin, tmax)
	lam := solar.LatentHeat(tmin, tmax)
	return math.Max(0., rg/(lam*rhow)*(ta+5.)/68.*100.)
}

// Abtew simple radiation form, zero below freezing (Xu and Singh, 2010).
func Abtew(doy int, tmin, tmax float64, ph Physio) float64 {
	ta := (tmin + tmax) / 2.
	if ta < 0. {
		return 0.
	}
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	rg := solar.Global(re, ph.LatitudeRad, doy, tmin, tmax)
	lam := solar.LatentHeat(tmin, tmax)
	return math.Max(0., 0.53*rg/lam/10.)
}

// Hargreaves after Hargreaves and Samani (Goyal and Harmsen, 2014). Zero on
// inconsistent tmax<tmin observations.
func Hargreaves(doy int, tmin, tmax float64, ph Physio) float64 {
	if tmax < tmin {
		return 0.
	}
	ta := (tmin + tmax) / 2.
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	return math.Max(0., 0.0135*(0.16*re*math.Sqrt(tmax-tmin))*0.4082*(ta+17.8)/10.)
}

// PriestleyTaylor energy-balance form, α=1.26.
func PriestleyTaylor(doy int, tmin, tmax float64, ph Physio) float64 {
	const (
		psi  = 0.066
		rhow = 1000.
		ct   = 1.26
	)
	re := solar.Extraterrestrial(ph.LatitudeRad, doy)
	rgo := solar.ClearSky(re, ph.Altitude)
	rg := solar.Global(re, ph.LatitudeRad, doy, tmin, tmax)
	rn := solar.Net(tmin, tmax, rg, rgo, ph.Albedo)
	m := solar.VapourPressureSlope(tmin, tmax)
	lam := solar.LatentHeat(tmin, tmax)
	return math.Max(0., ct*m*rn/(lam*rhow*(m+psi))*100.)
}
