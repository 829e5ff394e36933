package snow

import (
	"log"

	"github.com/maseology/goHydro/snowpack"
)

// CCFPack delegates pack accumulation and melt to a cold-content factor
// snowpack, keeping the frost and deposited-ice handling of the degree-day
// packs. The underlying pack works in metres.
type CCFPack struct {
	par       Params
	sp        snowpack.CCF
	Ice       float64 // deposited ice water equivalent [cm]
	SinceSnow float64 // days since last snowfall
}

// NewCCFPack builds a cold-content pack from the five CCF parameters.
func NewCCFPack(par Params, tindex, ddf, ddfc, baseT, tsf float64) *CCFPack {
	return &CCFPack{par: par, sp: snowpack.NewCCF(tindex, ddf, ddfc, baseT, tsf)}
}

// NewDefaultCCFPack builds a cold-content pack with library defaults.
func NewDefaultCCFPack(par Params) *CCFPack {
	return &CCFPack{par: par, sp: snowpack.NewDefaultCCF()}
}

// SWE the pack water equivalent [cm].
func (p *CCFPack) SWE() float64 {
	_, _, swe, _ := p.sp.Properties()
	return swe * 100.
}

// Storage pack plus deposited ice [cm].
func (p *CCFPack) Storage() float64 { return p.SWE() + p.Ice }

// IceStore the deposited ice water equivalent [cm].
func (p *CCFPack) IceStore() float64 { return p.Ice }

// SetIce replaces the deposited ice store [cm].
func (p *CCFPack) SetIce(cm float64) { p.Ice = cm }

// Step advances the pack one time step. Yield released by the pack is the
// mass balance of the update; the evaporative demand is withheld while snow
// is on the ground.
func (p *CCFPack) Step(in Input, etp float64, sol, gel *float64) Result {
	var r Result
	d := etp * p.par.EvapSummer

	if p.SWE() > 0. && in.Snow <= 0. {
		p.SinceSnow += in.Dur
	} else {
		p.SinceSnow = 0.
	}

	tm := (in.Tmin + in.Tmax) / 2.
	swe0 := p.SWE()
	melt, throughfall, err := p.sp.Update(in.Rain/100., in.Snow/100., tm)
	if err != nil {
		log.Fatalf("snow.CCFPack.Step: %v", err)
	}
	r.Surface = (melt + throughfall) * 100.
	swe := p.SWE()
	// whatever the pack neither released nor retained left as vapour
	r.Sublim = in.Rain + in.Snow - r.Surface - (swe - swe0)

	dtx := in.Tmax - p.par.TbaseDay
	dtn := in.Tmin - p.par.TbaseNight

	if dtx < 0. {
		*sol, *gel = FreezeSoil(in.Dur, dtx, p.par.SolMin, *sol, *gel, swe)
		return r
	}

	if *gel > 0. {
		*sol, *gel = ThawSoil(in.Dur, dtx, *sol, *gel, swe)
	}
	if swe > 0. {
		return r
	}
	r.Demand = d
	if p.Ice > 0. {
		pot := icePotential(p.par, p.SinceSnow, in, dtx, dtn)
		r.IceMelt, p.Ice = drawIce(pot, p.Ice)
	}
	return r
}
