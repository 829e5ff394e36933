// Package hsami simulates the water balance of a lumped watershed: canopy
// and snow interception, evapotranspiration, vertical flow through the
// unsaturated zone and the water table, an optional equivalent wetland, and
// unit-hydrograph routing to the outlet. Process formulations are selected
// per watershed through Modules; every step closes its water balance or the
// run aborts.
package hsami

import (
	"math"

	"github.com/maseology/goHydro/solirrad"
	"github.com/maseology/hsami/pet"
	"github.com/maseology/hsami/route"
	"github.com/maseology/hsami/snow"
	"github.com/maseology/hsami/soil"
	"github.com/maseology/hsami/wetland"
)

const (
	defaultMemoryDays = 50   // routing memory when no hydrograph is imposed [d]
	defaultBalanceTol = 1e-6 // per-step residual tolerance [cm]
)

// Kernel a watershed with its formulation selection resolved, ready to
// simulate. Safe to run repeatedly; runs sharing a Kernel must not share a
// State.
type Kernel struct {
	Par         Parameter
	Mod         Modules
	Bsn         Basin
	StepsPerDay int
	BalanceTol  float64 // [cm]

	etp      pet.Method
	ph       pet.Physio
	psi      []float64 // terrain irradiation factors per day of year
	col      *soil.Column
	huS, huI []float64
}

// New resolves the formulation selection and validates the parameters.
func New(par Parameter, mod Modules, bsn Basin, stepsPerDay int) (*Kernel, error) {
	if err := mod.Check(); err != nil {
		return nil, err
	}
	if err := par.Check(mod); err != nil {
		return nil, err
	}
	if err := bsn.Check(mod); err != nil {
		return nil, err
	}
	if stepsPerDay < 1 || 24%stepsPerDay != 0 {
		return nil, &ParamError{Name: "steps_per_day", Value: float64(stepsPerDay), Reason: "must divide 24"}
	}

	k := &Kernel{
		Par:         par,
		Mod:         mod,
		Bsn:         bsn,
		StepsPerDay: stepsPerDay,
		BalanceTol:  defaultBalanceTol,
		etp:         pet.New(mod.PET),
		ph: pet.Physio{
			LatitudeRad: bsn.Latitude * math.Pi / 180.,
			Altitude:    bsn.Altitude,
			Albedo:      bsn.Albedo,
		},
		col: soil.NewColumn(par.soilParams(), mod.infil(), mod.qbase(), mod.layers()),
	}

	if mod.Radiation == "mdj" {
		si := solirrad.New(bsn.Latitude, math.Tan(bsn.SlopeRad), bsn.AspectRad)
		p := si.PSIfactor
		k.psi = p[:]
	}

	if bsn.HuSurf != nil {
		k.huS, k.huI = bsn.HuSurf, bsn.HuInter
	} else {
		n := defaultMemoryDays * stepsPerDay
		k.huS = route.Hydrograph(par.ModeSurf, par.FormeSurf, stepsPerDay, n)
		k.huI = route.Hydrograph(par.ModeInter, par.FormeInter, stepsPerDay, n)
	}
	return k, nil
}

// NewState the default initial state: snow-free pack, unsaturated store and
// water table at their initial parameters, wetland at its normal stage,
// empty hydrographs.
func (k *Kernel) NewState() *State {
	s := &State{Router: route.New(k.huS, k.huI, k.Par.DrainInter)}

	sp := k.Par.snowParams(k.Mod)
	switch k.Mod.Snow {
	case "dj":
		s.Pack = snow.NewPackDJ(sp)
	case "ccf":
		s.Pack = snow.NewCCFPack(sp, k.Par.Tindex, k.Par.Ddf, k.Par.Ddfc, k.Par.TbaseDay, k.Par.Tsf)
	default:
		s.Pack = snow.NewPack(sp)
	}

	if k.Mod.layers() {
		s.Soil.Sol = [2]float64{k.Par.CC[0] * k.Par.Z[0], k.Par.CC[1] * k.Par.Z[1]}
	} else {
		s.Soil.Sol = [2]float64{math.Min(k.Par.Sol0, k.Par.SolMax), 0.}
	}
	s.Soil.Nappe = math.Min(math.Max(k.Par.Nappe0, 0.), k.Par.NappeMax)

	if k.Mod.Wetland {
		s.Wet = wetland.New(k.Par.wetlandParams(), k.Bsn.AreaKm2, k.Bsn.WetKm2)
	}
	if k.Mod.IceCover {
		s.Ice = snow.NewIceCover(k.Par.IceK)
	}
	return s
}

// SpinUp steps the state through up to one year of the forcing, keeping the
// state and discarding the outputs.
func (k *Kernel) SpinUp(frc *Forcing, s *State) error {
	n := 365 * k.StepsPerDay
	if n > len(frc.T) {
		n = len(frc.T)
	}
	for i := 0; i < n; i++ {
		if _, err := k.step(s, i, frc.T[i], frc); err != nil {
			return err
		}
	}
	return nil
}

// Run simulates the forcing series, mutating s in place and returning it as
// the final state. A nil s starts from the default state warmed up over the
// series' first year. Deterministic given identical parameters, forcing and
// state.
func (k *Kernel) Run(frc *Forcing, s *State) (*Output, *State, error) {
	if err := frc.Check(); err != nil {
		return nil, nil, err
	}
	if s == nil {
		s = k.NewState()
		if err := k.SpinUp(frc, s); err != nil {
			return nil, nil, err
		}
	} else if err := checkState(s); err != nil {
		return nil, nil, err
	}

	o := newOutput(len(frc.T))
	for i, t := range frc.T {
		rec, err := k.step(s, i, t, frc)
		if err != nil {
			return nil, nil, err
		}
		o.append(t, rec)
	}
	return o, s, nil
}

func checkState(s *State) error {
	if s.Pack == nil || s.Router == nil {
		return &ParamError{Name: "state", Reason: "missing pack or router"}
	}
	for _, v := range []struct {
		n string
		v float64
	}{
		{"sol", s.Soil.Sol[0]}, {"sol", s.Soil.Sol[1]},
		{"nappe", s.Soil.Nappe}, {"gel", s.Soil.Gel},
		{"pack", s.Pack.Storage()},
	} {
		if v.v < 0. {
			return &ParamError{Name: "state." + v.n, Value: v.v, Reason: "store must be non-negative"}
		}
	}
	return nil
}
