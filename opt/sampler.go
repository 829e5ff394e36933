// Package opt maps unit-hypercube samples to watershed parameter sets for
// calibration and Monte Carlo sweeps.
package opt

import (
	"github.com/maseology/hsami"
	"github.com/maseology/mmaths"
)

// NDim the calibrated dimension count.
const NDim = 23

// Par transforms a u-space sample to a parameter set for the historical
// formulation selection. Log transforms cover the scale parameters.
func Par(u []float64) hsami.Parameter {
	var p hsami.Parameter
	p.EvapSummer = mmaths.LinearTransform(.5, 3., u[0])
	p.EvapWinter = mmaths.LinearTransform(.1, 1.5, u[1])
	p.MeltDay = mmaths.LinearTransform(.05, .6, u[2]) // [cm/°C/d]
	p.MeltNight = mmaths.LinearTransform(.02, .4, u[3])
	p.TbaseDay = mmaths.LinearTransform(-3., 6., u[4])
	p.TbaseNight = mmaths.LinearTransform(-6., 3., u[5])
	p.TrainRef = mmaths.LinearTransform(-2., 4., u[6])
	p.CoverScale = mmaths.LinearTransform(.8, 3., u[7])
	p.FrostEffect = mmaths.LinearTransform(0., 10., u[8])
	p.SolEffect = mmaths.LinearTransform(.5, 6., u[9])
	p.MinThresh = mmaths.LinearTransform(.05, 1., u[10])
	p.SolMin = mmaths.LinearTransform(0., 2., u[11])
	p.SolMax = mmaths.LinearTransform(5., 30., u[12])
	p.NappeMax = mmaths.LinearTransform(5., 50., u[13])
	p.RunoffSurf = mmaths.LinearTransform(0., 1., u[14])
	p.RunoffSolMax = mmaths.LinearTransform(0., 1., u[15])
	p.DrainSol = mmaths.LogLinearTransform(.0001, .5, u[16])
	p.DrainNappe = mmaths.LogLinearTransform(.0001, .5, u[17])
	p.DrainInter = mmaths.LinearTransform(.3, .999, u[18])
	p.ModeSurf = mmaths.LinearTransform(.1, 5., u[19]) // [d]
	p.FormeSurf = mmaths.LinearTransform(.5, 5., u[20])
	p.ModeInter = mmaths.LinearTransform(1., 10., u[21])
	p.FormeInter = mmaths.LinearTransform(.5, 5., u[22])

	// start from the middle of the stores
	p.Sol0 = p.SolMax / 2.
	p.Nappe0 = p.NappeMax / 2.
	return p
}

// ParGreenAmpt extends Par with the Green-Ampt infiltration dimensions.
// len(u) = NDim+2.
func ParGreenAmpt(u []float64) hsami.Parameter {
	p := Par(u[:NDim])
	p.LogKs = mmaths.LinearTransform(-1., 2.5, u[NDim]) // 0.1 to ~316 cm/d
	p.PsiGA = mmaths.LinearTransform(5., 60., u[NDim+1])
	return p
}

// ParWetland extends Par with the equivalent-wetland dimensions.
// len(u) = NDim+3.
func ParWetland(u []float64) hsami.Parameter {
	p := Par(u[:NDim])
	p.WetHmax = mmaths.LinearTransform(.3, 3., u[NDim])
	p.WetPnorm = mmaths.LinearTransform(.1, .9, u[NDim+1])
	p.LogWetKsat = mmaths.LinearTransform(-5., -1., u[NDim+2])
	return p
}
