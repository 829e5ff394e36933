package hsami

import (
	"math"
	"math/rand"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

const evalPenalty = math.MaxFloat32

// Evaluator scores parameter sets against an observed discharge record.
// Safe for concurrent Evaluate calls: every run builds its own kernel and
// state.
type Evaluator struct {
	Mod         Modules
	Bsn         Basin
	StepsPerDay int
	Frc         *Forcing
	Qobs        []float64 // [m³/s], aligned with Frc.T
	Warmup      int       // leading steps excluded from scoring
}

// Evaluate runs the parameter set over the forcing and returns 1-KGE
// (minimized). Invalid parameters and aborted runs take a flat penalty.
func (ev *Evaluator) Evaluate(par Parameter) float64 {
	k, err := New(par, ev.Mod, ev.Bsn, ev.StepsPerDay)
	if err != nil {
		return evalPenalty
	}
	o, _, err := k.Run(ev.Frc, nil)
	if err != nil {
		return evalPenalty
	}
	of := 1. - objfunc.KGE(ev.Qobs[ev.Warmup:], o.Qtotal[ev.Warmup:])
	if math.IsNaN(of) {
		return evalPenalty
	}
	return of
}

// Optimize searches the parameter space with the shuffled complex
// evolutionary scheme, gen mapping unit-hypercube samples to parameter
// sets over ndim dimensions.
func (ev *Evaluator) Optimize(gen func([]float64) Parameter, ndim, ncmplx int) (Parameter, float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	fitness := func(u []float64) float64 { return ev.Evaluate(gen(u)) }
	uFinal, of := glbopt.SCE(ncmplx, ndim, rng, fitness, true)
	return gen(uFinal), of
}
