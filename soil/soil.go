// Package soil moves water vertically through the unsaturated zone and the
// water table: surface partition between runoff and infiltration, layer
// percolation, root uptake, and baseflow drainage. All stores and fluxes are
// cm of water over the basin.
package soil

import "math"

// Infil selects the infiltration formulation.
type Infil int

const (
	InfHsami Infil = iota // threshold partition computed at the surface
	InfGreenAmpt
	InfSCS
)

// Qbase selects the water-table drainage formulation.
type Qbase int

const (
	QbHsami Qbase = iota // linear reservoir
	QbDingman
)

// Params the soil column parameters. Depths and capacities in cm,
// conductivities in cm/d, rates per day.
type Params struct {
	SolMin, SolMax float64 // unsaturated store bounds
	NappeMax       float64 // saturated store capacity

	RunoffSurf   float64 // interflow share of infiltrated water
	RunoffSolMax float64 // runoff share of unsaturated overflow
	DrainSol     float64 // unsaturated-to-water-table drainage rate [1/d]
	DrainNappe   float64 // water-table drainage rate [1/d]

	FrostEffect float64 // frost effect on the runoff threshold
	SolEffect   float64 // soil-moisture effect on the runoff threshold [cm]
	MinThresh   float64 // floor on the 24h runoff threshold [cm]

	CN      float64 // curve number
	Ks, Psi float64 // saturated conductivity [cm/d], wetting-front suction [cm]

	Krec, Sy float64 // recession coefficient and specific yield (dingman)

	// three-layer profile
	B   [2]float64 // pore-size distribution index
	Z   [2]float64 // layer thicknesses [cm]
	CC  [2]float64 // field capacities [cm/cm]
	N   [2]float64 // total porosities [cm/cm]
	Ks2 float64    // second-layer saturated conductivity [cm/d]
	PFP float64    // permanent wilting point [cm/cm]
}

// State the soil column stores.
type State struct {
	Sol   [2]float64 // unsaturated layers (second used by the 3-layer profile)
	Nappe float64    // water table
	Gel   float64    // frozen soil water
}

// Flows the fluxes leaving the column over one step.
type Flows struct {
	Base     float64 // water-table discharge
	Inter    float64 // interflow
	Runoff   float64 // surface runoff
	Evapo    float64 // evaporation satisfied at the surface
	Pumping  float64 // root uptake beyond the surface supply
	Recharge float64 // percolation reaching the water table (3-layer profile)
}

// Column a per-run soil column with its formulation choices resolved.
type Column struct {
	Par    Params
	Infil  Infil
	Qb     Qbase
	Layers bool // three-layer profile instead of the two-reservoir one
	GA     GreenAmpt
}

// NewColumn resolves the column formulations from parameters. The Green-Ampt
// receiving porosity follows the first layer for the 3-layer profile.
func NewColumn(par Params, inf Infil, qb Qbase, layers bool) *Column {
	n := 0.45
	if layers {
		n = par.N[0]
	}
	return &Column{
		Par:    par,
		Infil:  inf,
		Qb:     qb,
		Layers: layers,
		GA:     GreenAmpt{Ks: par.Ks, Psi: par.Psi, N: n},
	}
}

// TopCapacity the maximum water content of the surface layer [cm].
func (c *Column) TopCapacity() float64 {
	if c.Layers {
		return c.Par.N[0] * c.Par.Z[0]
	}
	return c.Par.SolMax
}

// PumpFloor the store level root uptake cannot draw below [cm].
func (c *Column) PumpFloor() float64 {
	if c.Layers {
		return c.Par.PFP * c.Par.Z[0]
	}
	return c.Par.SolMin
}

// Partition splits surface water between immediate runoff and the
// infiltration offer. The Green-Ampt and curve-number formulations take the
// whole supply as offer and resolve runoff during the vertical step.
func (c *Column) Partition(nbpas int, s *State, avail float64) (runoff, offer float64) {
	if c.Infil != InfHsami {
		return 0., avail
	}
	np := float64(nbpas)
	seuil := c.Par.SolEffect/np*(1.-s.Sol[0]/c.TopCapacity()) - c.Par.FrostEffect*s.Gel
	seuil = math.Max(seuil, c.Par.MinThresh/np)
	if avail >= seuil {
		runoff = avail - seuil/2.
	} else {
		runoff = avail * avail / (2. * seuil)
	}
	return runoff, avail - runoff
}

// Step advances the column one time step. offre is the surface water supply
// after interception, demande the residual evaporative demand, runoff the
// surface partition result, swe the pack water equivalent.
func (c *Column) Step(s *State, nbpas int, offre, demande, runoff, swe float64) (Flows, error) {
	if c.Layers {
		return c.stepLayers(s, nbpas, offre, demande, runoff, swe)
	}
	return c.stepReservoirs(s, nbpas, offre, demande, runoff, swe)
}

// stepReservoirs the two-reservoir column: one unsaturated store over a
// linear water table.
func (c *Column) stepReservoirs(s *State, nbpas int, offre, demande, runoff, swe float64) (Flows, error) {
	var fl Flows
	np := float64(nbpas)

	ecart := offre - demande
	if ecart > 0. {
		fl.Evapo = demande
		offre -= demande

		var infPot float64
		switch c.Infil {
		case InfGreenAmpt:
			var err error
			infPot, fl.Runoff, err = c.GA.Infiltrate(offre, c.Par.SolMax, s.Sol[0], nbpas, s.Gel, swe)
			if err != nil {
				return fl, err
			}
		case InfSCS:
			infPot, fl.Runoff = curveNumber(offre, c.Par.CN)
		default:
			infPot = offre
			fl.Runoff = runoff
		}

		// a share of the infiltrated water short-circuits to the
		// intermediate hydrograph
		fl.Inter = infPot * c.Par.RunoffSurf
		s.Sol[0] += infPot * (1. - c.Par.RunoffSurf)
	} else {
		// roots draw on the store, less efficiently as it dries
		fl.Evapo = offre
		fl.Pumping = math.Min(s.Sol[0]-c.Par.SolMin, -s.Sol[0]/c.Par.SolMax*ecart)
		s.Sol[0] -= fl.Pumping
		if c.Infil == InfHsami {
			fl.Runoff = runoff
		}
	}

	// water-table drainage and overflow
	fl.Base, s.Nappe = c.drain(s.Nappe, np)
	if s.Nappe > c.Par.NappeMax {
		fl.Runoff += s.Nappe - c.Par.NappeMax
		s.Nappe = c.Par.NappeMax
	}

	// unsaturated overflow, keeping sol+gel within capacity
	if deb := s.Sol[0] + s.Gel - c.Par.SolMax; deb > 0. {
		fl.Inter += deb * c.Par.RunoffSolMax
		s.Nappe += deb * (1. - c.Par.RunoffSolMax)
		s.Sol[0] -= deb
		if s.Sol[0] < 0. {
			s.Gel += s.Sol[0]
			s.Sol[0] = 0.
		}
	}

	// gravity drainage to the water table
	if s.Sol[0] > c.Par.SolMin {
		d := (s.Sol[0] - c.Par.SolMin) * c.Par.DrainSol / np
		s.Nappe += d
		s.Sol[0] -= d
		fl.Recharge = d
	}
	return fl, nil
}

func (c *Column) drain(nappe, np float64) (q, rem float64) {
	if c.Qb == QbDingman {
		q = c.Par.Krec / np * c.Par.Sy * nappe * math.Exp(-c.Par.Krec/np)
		return q, nappe - q
	}
	q = nappe * c.Par.DrainNappe / np
	return q, nappe - q
}
