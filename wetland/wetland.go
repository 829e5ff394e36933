// Package wetland models an equivalent wetland intercepting a share of the
// basin's vertical water supplies, after the HYDROTEL stage-storage
// formulation. Volumes in m³, areas in hectares, lane depths in cm.
package wetland

import "math"

// Params the equivalent-wetland parameters.
type Params struct {
	Hmax  float64 // maximum water depth [m]
	Pnorm float64 // normal fraction of the maximum surface and volume
	Ksat  float64 // saturated conductivity at the wetland base [cm/d]
}

// Wetland an equivalent wetland and its stage-storage state.
type Wetland struct {
	par Params

	supBV  float64 // basin surface [ha]
	saMax  float64 // maximum wetland surface [ha]
	saNorm float64 // normal wetland surface [ha]
	vMax   float64 // maximum volume [m³]
	vNorm  float64 // normal volume [m³]
	vMin   float64 // residual volume floor [m³]

	alpha, beta float64 // stage-storage fit

	Vol        float64 // current volume [m³]
	Surf       float64 // current surface [ha]
	Ratio      float64 // wetland share of the basin [-]
	RatioQbase float64 // wetland share of the blended baseflow lane [-]
	Depth      float64 // equivalent basin depth held by the wetland [cm]
}

// Lanes the vertical supplies entering and leaving the wetland stage [cm].
type Lanes struct {
	Base, Inter, Runoff float64
	Spill               float64 // overflow released above the normal volume
	Evap                float64 // wetland evaporation
}

// New builds the wetland at its normal stage. Areas in km².
func New(par Params, basinKm2, saMaxKm2 float64) *Wetland {
	w := &Wetland{
		par:    par,
		supBV:  basinKm2 * 100.,
		saMax:  saMaxKm2 * 100.,
		saNorm: par.Pnorm * saMaxKm2 * 100.,
	}
	w.vMax = par.Hmax * w.saMax * 10000.
	w.vNorm = par.Pnorm * w.vMax
	w.vMin = 0.5 * w.vNorm
	w.alpha = (math.Log10(w.saMax) - math.Log10(w.saNorm)) /
		(math.Log10(w.vMax) - math.Log10(w.vNorm))
	w.beta = w.saMax / math.Pow(w.vMax, w.alpha)

	w.Surf = w.saNorm
	w.Vol = w.vNorm
	w.Ratio = w.Surf / w.supBV
	w.Depth = w.Vol * w.Ratio / (w.Surf * 100.)
	return w
}

// Step routes the wetland share of the vertical supplies through the stage:
// fill, spill above the normal volume, evaporation and seepage down to the
// residual floor. The basin share passes through untouched; wetland seepage
// rejoins the baseflow lane.
func (w *Wetland) Step(in Lanes, demande float64) Lanes {
	sa := w.Surf

	v := w.Vol + (in.Base+in.Inter+in.Runoff)*sa*100.

	// spill: a tenth of the excess over the normal volume, plus everything
	// over the maximum
	var vsurf float64
	switch {
	case v <= w.vNorm:
	case v <= w.vMax:
		vsurf = (v - w.vNorm) / 10.
	default:
		vsurf = (v - w.vMax) + (w.vMax-w.vNorm)/10.
	}
	v -= vsurf

	// open-water evaporation down to the residual floor
	vevap := demande * sa * 100.
	if offre := (v - w.vMin) / (sa * 100.); offre <= demande {
		vevap = offre * sa * 100.
	}
	v -= vevap

	// seepage through the base
	vseep := w.par.Ksat * sa * 100.
	if offre := v - w.vMin; offre <= vseep {
		vseep = offre
	}
	v -= vseep

	w.Surf = w.beta * math.Pow(v, w.alpha)
	w.Vol = v

	qbMH := vseep * w.Ratio / (sa * 100.)
	qsMH := vsurf * w.Ratio / (sa * 100.)
	etrMH := vevap * w.Ratio / (sa * 100.)

	out := Lanes{
		Base:   qbMH + in.Base*(1.-w.Ratio),
		Inter:  in.Inter * (1. - w.Ratio),
		Runoff: in.Runoff * (1. - w.Ratio),
		Spill:  qsMH,
		Evap:   etrMH,
	}
	w.RatioQbase = 0.
	if out.Base > 0. {
		w.RatioQbase = qbMH / out.Base
	}

	w.Ratio = w.Surf / w.supBV
	w.Depth = w.Vol * w.Ratio / (w.Surf * 100.)
	return out
}
