package hsami

import (
	"github.com/maseology/hsami/route"
	"github.com/maseology/hsami/snow"
	"github.com/maseology/hsami/soil"
	"github.com/maseology/hsami/wetland"
)

// Snowpack the winter surface stage, one of the degree-day or cold-content
// formulations.
type Snowpack interface {
	Step(in snow.Input, etp float64, sol, gel *float64) snow.Result
	SWE() float64
	Storage() float64
	IceStore() float64
	SetIce(cm float64)
}

// State the model stores between steps. Exclusively owned by the kernel for
// a run's duration; callers wanting to branch a simulation take a Copy.
type State struct {
	Pack   Snowpack
	Soil   soil.State
	Wet    *wetland.Wetland // nil when the wetland module is off
	Router *route.Router
	Ice    *snow.IceCover // nil when the ice-cover diagnostic is off
	Pas    int            // position within the day, cycles 1..stepsPerDay
}

// Copy a deep copy, so a simulation can branch without state leaking
// between runs.
func (s *State) Copy() *State {
	c := *s
	switch p := s.Pack.(type) {
	case *snow.Pack:
		pp := *p
		c.Pack = &pp
	case *snow.CCFPack:
		pp := *p
		c.Pack = &pp
	}
	if s.Wet != nil {
		w := *s.Wet
		c.Wet = &w
	}
	if s.Ice != nil {
		ic := *s.Ice
		c.Ice = &ic
	}
	c.Router = s.Router.Copy()
	return &c
}

// Storage every store in the state expressed as a basin water depth [cm].
func (s *State) Storage() float64 {
	t := s.Pack.Storage() + s.Soil.Sol[0] + s.Soil.Sol[1] + s.Soil.Nappe + s.Soil.Gel +
		s.Router.Storage()
	if s.Wet != nil {
		t += s.Wet.Depth
	}
	return t
}
