// Package route lags the basin's vertical supplies to the outlet: a beta-law
// unit hydrograph convolution for surface water and wetland spill, and a
// lateral unit hydrograph draining through a leaky linear reserve for
// interflow.
package route

import "math"

// Hydrograph computes a unit hydrograph over n steps peaking after mode days,
// following a beta law of shape forme and truncated at the memory length.
func Hydrograph(mode, forme float64, stepsPerDay, n int) []float64 {
	h := make([]float64, n)
	s := 0.
	for i := range h {
		t := float64(i + 1)
		h[i] = math.Pow(t, mode*forme) * math.Exp(-forme*t/float64(stepsPerDay))
		s += h[i]
	}
	for i := range h {
		h[i] /= s
	}
	return h
}

// Lanes the per-step supplies entering and leaving the routing stage [cm].
type Lanes struct {
	Base, Inter, Runoff float64
	IceMelt             float64 // passed through unlagged
	Spill               float64 // wetland spill, lagged with the surface water
}

// Router the routing state: water in transit on each unit hydrograph and the
// intermediate reserve.
type Router struct {
	hsurf, hinter []float64
	surf          []float64 // surface water in transit
	inter         []float64 // lateral water in transit
	wet           []float64 // wetland spill in transit
	drain         float64   // daily retention rate of the intermediate reserve

	Reserve float64 // intermediate reserve [cm]
}

// New builds a router with the given unit hydrographs. Imposed hydrographs
// may be passed directly in place of the beta-law ones; both must span the
// same memory.
func New(hsurf, hinter []float64, drain float64) *Router {
	n := len(hsurf)
	return &Router{
		hsurf:  hsurf,
		hinter: hinter,
		surf:   make([]float64, n),
		inter:  make([]float64, n),
		wet:    make([]float64, n),
		drain:  drain,
	}
}

// Step spreads the step's supplies over the hydrographs and releases the
// water due at the outlet. Baseflow and ice melt pass through unlagged.
// Every lane conserves mass: what enters leaves the outlet eventually or
// stays accounted in Storage.
func (r *Router) Step(nbpas int, in Lanes) Lanes {
	v := 1. - (1.-r.drain)/float64(nbpas)
	n := len(r.surf)

	for i := range r.surf {
		r.surf[i] += r.hsurf[i] * in.Runoff
	}
	if in.Spill != 0. {
		for i := range r.wet {
			r.wet[i] += r.hsurf[i] * in.Spill
		}
	}
	for i := range r.inter {
		r.inter[i] += r.hinter[i] * in.Inter
	}

	// the lateral water due this step tops up the reserve, which leaks a
	// fixed fraction of its stage
	r.Reserve += r.inter[0]
	ei := r.Reserve * (1. - v)
	r.Reserve -= ei

	out := Lanes{
		Base:    in.Base,
		Inter:   ei,
		Runoff:  r.surf[0],
		IceMelt: in.IceMelt,
		Spill:   r.wet[0],
	}

	// advance the hydrographs one step
	copy(r.surf, r.surf[1:])
	r.surf[n-1] = 0.
	copy(r.wet, r.wet[1:])
	r.wet[n-1] = 0.
	copy(r.inter, r.inter[1:])
	r.inter[n-1] = 0.

	return out
}

// Copy a deep copy sharing the (immutable) hydrograph ordinates.
func (r *Router) Copy() *Router {
	c := *r
	c.surf = append([]float64(nil), r.surf...)
	c.inter = append([]float64(nil), r.inter...)
	c.wet = append([]float64(nil), r.wet...)
	return &c
}

// Storage the water in transit on the three hydrographs plus the
// intermediate reserve [cm].
func (r *Router) Storage() float64 {
	s := r.Reserve
	for i := range r.surf {
		s += r.surf[i] + r.wet[i] + r.inter[i]
	}
	return s
}
