package soil

import (
	"errors"
	"math"
)

// ErrNonConvergence the bounded search failed to bracket a minimum within
// its iteration cap, at the strict and the relaxed tolerance.
var ErrNonConvergence = errors.New("soil: infiltration search did not converge")

const (
	gaTol        = 1e-8
	gaTolRelaxed = 1e-6
	gaMaxIter    = 200
)

// GreenAmpt the Green-Ampt infiltration formulation as implemented in SWAT.
// Cumulative infiltration is found by minimizing the capacity-curve mismatch
// over the step supply.
type GreenAmpt struct {
	Ks  float64 // saturated conductivity [cm/d]
	Psi float64 // wetting-front suction [cm]
	N   float64 // porosity of the receiving layer [cm/cm]

	Searches int // bounded-search invocations
}

// Infiltrate splits the surface supply between infiltration and runoff.
// When the soil is frozen under a pack, the Green-Ampt rate is blended with
// the Granger-Pomeroy frozen-soil rate in proportion to the frost.
func (ga *GreenAmpt) Infiltrate(avail, solMax, sol float64, nbpas int, gel, swe float64) (inf, runoff float64, err error) {
	np := float64(nbpas)

	// the whole supply infiltrates below the conductivity rate
	if avail*np < ga.Ks {
		return avail, 0., nil
	}

	m := ga.N * (solMax - sol) / solMax
	var f float64
	if m == 0. {
		// saturated: infiltration runs at the conductivity rate,
		// no search needed
		f = ga.Ks
	} else {
		k := ga.Ks / 2.
		psi := math.Abs(ga.Psi)
		obj := func(f float64) float64 {
			return math.Abs(-f + k/np + psi*m*math.Log(1.+f/(psi*m)))
		}
		ga.Searches++
		var ok bool
		if f, ok = fminbound(obj, 0., avail*np, gaTol, gaMaxIter); !ok {
			if f, ok = fminbound(obj, 0., avail*np, gaTolRelaxed, gaMaxIter); !ok {
				return 0., 0., ErrNonConvergence
			}
		}
	}

	if gel > 0. && swe > 0. {
		rg := gel / solMax
		theta := ga.N * sol / solMax
		fgp := 5. * (1. - theta) * math.Pow(swe*10., 0.584) / 10. // Granger-Pomeroy
		f = fgp*rg + f*(1.-rg)
	}

	if f > avail {
		return avail, 0., nil
	}
	return f, avail - f, nil
}

const invphi = 0.6180339887498949 // (sqrt(5)-1)/2

// fminbound minimizes f on [a,b] by golden-section search. Allocation-free;
// the tolerance is on the bracket width.
func fminbound(f func(float64) float64, a, b, tol float64, maxit int) (float64, bool) {
	x1 := b - invphi*(b-a)
	x2 := a + invphi*(b-a)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < maxit; i++ {
		if b-a <= tol {
			return (a + b) / 2., true
		}
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invphi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invphi*(b-a)
			f2 = f(x2)
		}
	}
	return (a + b) / 2., b-a <= tol
}
