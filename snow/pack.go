// Package snow simulates the winter surface processes of a lumped basin:
// rain/snow partition, snowpack accumulation and degree-day melt, soil frost,
// and deposited-ice melt. All stores and fluxes are in cm water equivalent.
package snow

import "math"

// Params degree-day melt and interception parameters.
type Params struct {
	EvapSummer float64 // summer evapotranspiration efficiency [-]
	EvapWinter float64 // winter evapotranspiration efficiency [-]
	MeltDay    float64 // daytime melt rate [cm/°C/d]
	MeltNight  float64 // nighttime melt rate [cm/°C/d]
	TbaseDay   float64 // daytime melt threshold [°C]
	TbaseNight float64 // nighttime melt threshold [°C]
	TrainRef   float64 // reference temperature for rain-heat melt [°C]
	CoverScale float64 // thaw effect on snow-covered fraction [-]
	SolMin     float64 // floor on soil water extractable by frost [cm]
}

// Input per-step forcing for the winter surface stage.
type Input struct {
	Tmin, Tmax float64 // daily extremes [°C]
	Rain, Snow float64 // step totals [cm]
	Sun        float64 // daily sunshine fraction [0,1]
	RadFactor  float64 // terrain irradiation multiplier, ≤0 treated as 1
	SweObs     float64 // snow survey water equivalent [cm], <0 when absent
	Dur        float64 // step length as a fraction of a day
}

// Result fluxes leaving the winter surface stage over one step.
type Result struct {
	Surface float64 // water released to the soil surface [cm]
	Demand  float64 // residual evaporative demand passed to the soil [cm]
	Sublim  float64 // sublimated snow [cm]
	Evap    float64 // rain and melt water evaporated off the pack [cm]
	IceMelt float64 // deposited-ice melt routed directly to the stream [cm]
	Assim   float64 // water added (or removed, negative) by a snow survey [cm]
}

// Pack a degree-day snowpack. The dj flag selects explicit solid/liquid phase
// accounting; otherwise rain and melt are pooled in the pack water equivalent.
type Pack struct {
	par Params
	dj  bool

	Swe       float64 // pack water equivalent including free water
	Free      float64 // liquid water held in the pack
	TotSnow   float64 // cumulative winter snowfall
	TotMelt   float64 // cumulative winter melt
	SinceSnow float64 // days since last snowfall
	Ice       float64 // deposited ice water equivalent
}

// NewPack builds a pooled-phase pack; NewPackDJ an explicit-phase pack.
func NewPack(par Params) *Pack   { return &Pack{par: par} }
func NewPackDJ(par Params) *Pack { return &Pack{par: par, dj: true} }

// SWE the pack water equivalent [cm].
func (p *Pack) SWE() float64 { return p.Swe }

// Storage pack plus deposited ice [cm].
func (p *Pack) Storage() float64 { return p.Swe + p.Ice }

// IceStore the deposited ice water equivalent [cm].
func (p *Pack) IceStore() float64 { return p.Ice }

// SetIce replaces the deposited ice store [cm].
func (p *Pack) SetIce(cm float64) { p.Ice = cm }

// SplitPrecip partitions precipitation linearly between -2 and +2°C mean
// temperature.
func SplitPrecip(tmin, tmax, prec float64) (rain, snow float64) {
	tm := (tmin + tmax) / 2.
	switch {
	case tm <= -2.:
		return 0., prec
	case tm >= 2.:
		return prec, 0.
	}
	a := (tm + 2.) / 4.
	return a * prec, (1. - a) * prec
}

// Step advances the pack one time step, drawing frost from and thawing frost
// to the unsaturated store sol/gel.
func (p *Pack) Step(in Input, etp float64, sol, gel *float64) Result {
	var r Result
	d := etp * p.par.EvapSummer

	if p.Swe > 0. && in.Snow <= 0. {
		p.SinceSnow += in.Dur
	} else {
		p.SinceSnow = 0.
	}

	// snow survey assimilation: adjust the pack, keep the winter deficit
	if in.SweObs >= 0. {
		delta := p.TotSnow - p.Swe
		r.Assim = in.SweObs - p.Swe
		p.Swe = in.SweObs
		p.TotSnow = p.Swe + delta
	}

	p.Swe += in.Snow
	p.TotSnow += in.Snow

	dtx := in.Tmax - p.par.TbaseDay
	dtn := in.Tmin - p.par.TbaseNight

	if dtx < 0. {
		p.cold(in, d, dtx, sol, gel, &r)
		return r
	}
	p.warm(in, d, dtx, dtn, sol, gel, &r)
	return r
}

func (p *Pack) cold(in Input, d, dtx float64, sol, gel *float64, r *Result) {
	d *= p.par.EvapWinter

	// rain freezes into the pack
	p.Swe += in.Rain
	p.TotSnow += in.Rain
	p.Free += in.Rain
	p.TotMelt += in.Rain

	// sublimation
	if d < p.Swe {
		p.Swe -= d
		r.Sublim = d
	} else {
		r.Sublim = p.Swe
		p.Swe, p.TotSnow = 0., 0.
		p.Free, p.TotMelt = 0., 0.
	}
	r.Demand = 0.

	*sol, *gel = FreezeSoil(in.Dur, dtx, p.par.SolMin, *sol, *gel, p.Swe)

	// a pack under a hundredth of an inch is left static in cold weather
	if p.Swe > 0.0254 {
		p.refreeze(in.Dur, dtx)
		if p.Free > 0. {
			r.Surface = p.percolate()
		}
	}
}

func (p *Pack) warm(in Input, d, dtx, dtn float64, sol, gel *float64, r *Result) {
	if *gel > 0. {
		*sol, *gel = ThawSoil(in.Dur, dtx, *sol, *gel, p.Swe)
	}

	if p.Swe <= 0. {
		r.Surface = in.Rain
		r.Demand = d
		if p.Ice > 0. {
			r.IceMelt = p.meltIce(in, dtx, dtn)
		}
		return
	}

	// snow-covered fraction shrinks with the winter melt ratio
	a := p.par.CoverScale * (1. - p.TotMelt/p.TotSnow)
	a = math.Max(0.1, math.Min(a, 1.))

	frad := radiationEffect(p.SinceSnow, in.Sun, in.RadFactor)
	melt := dtx*a*p.par.MeltDay*frad*in.Dur + dtn*a*p.par.MeltNight*in.Dur

	tm := 2./3.*in.Tmax + in.Tmin/3.
	if tm > p.par.TrainRef {
		melt += 0.0126 * (tm - p.par.TrainRef) * a * in.Rain
	}

	if p.dj {
		p.meltDJ(in, d, a, melt, r)
	} else {
		p.meltPooled(in, d, a, melt, r)
	}

	// rain on bare ground bypasses the pack
	r.Surface = in.Rain * (1. - a)
	r.Demand = d * (1. - a)

	if p.Free < p.Swe {
		r.Surface += p.percolate()
	} else {
		r.Surface += p.Swe
		p.Swe, p.TotSnow = 0., 0.
		p.Free, p.TotMelt = 0., 0.
	}

	if p.Swe == 0. && p.Ice > 0. {
		r.IceMelt = p.meltIce(in, dtx, dtn)
	}
}

// meltPooled pools rain less evaporation into the pack before melt.
func (p *Pack) meltPooled(in Input, d, a, melt float64, r *Result) {
	pme := (in.Rain - p.par.EvapWinter*d) * a
	if p.Swe+pme < 0. {
		r.Evap = p.Swe + in.Rain*a
	} else {
		r.Evap = p.par.EvapWinter * d * a
	}
	melt += pme

	p.Swe += pme
	p.TotSnow += pme
	if p.Swe < 0. {
		// demand took the whole pack along with the rain
		p.Swe, p.TotSnow = 0., 0.
		p.Free, p.TotMelt = 0., 0.
	}
	if melt > 0. {
		p.Free += melt
		p.TotMelt += melt
	}
}

// meltDJ tracks the solid and liquid phases separately, satisfying the
// evaporative demand from rain, then melt water, then solid snow.
func (p *Pack) meltDJ(in Input, d, a, melt float64, r *Result) {
	solid := p.Swe - p.Free
	if melt < 0. {
		g := -melt
		if p.Free >= g {
			p.Free -= g
			solid += g
		} else {
			solid += p.Free
			p.Free = 0.
		}
	} else if solid >= melt {
		p.Free += melt
		solid -= melt
	} else {
		p.Free += solid
		solid = 0.
	}

	dem := d * p.par.EvapWinter * a
	ros := in.Rain * a
	if dem > 0. {
		if ros >= dem {
			r.Evap = dem
			ros -= dem
		} else {
			r.Evap = ros
			dem -= ros
			ros = 0.
			if p.Free >= dem {
				r.Evap += dem
				p.Free -= dem
			} else {
				r.Evap += p.Free
				dem -= p.Free
				p.Free = 0.
				if solid >= dem {
					r.Sublim += dem
					solid -= dem
				} else {
					r.Sublim += solid
					solid = 0.
				}
			}
		}
	}

	p.Free += ros
	p.Swe = solid + p.Free
}

// percolate drains pack water beyond the 10% retention capacity.
func (p *Pack) percolate() float64 {
	d := (p.Free - 0.1*p.Swe) / 0.9
	if d <= 0. {
		return 0.
	}
	if d >= p.Swe {
		l := p.Swe
		p.Swe, p.Free, p.TotSnow = 0., 0., 0.
		return l
	}
	p.Free -= d
	p.Swe -= d
	return d
}

// refreeze freezes pack free water in cold weather.
func (p *Pack) refreeze(dur, dtx float64) {
	delta := -2.54 * 2.54 * 0.072 * dtx / p.Swe * dur
	if p.Free < delta {
		p.Free, p.TotMelt = 0., 0.
	} else {
		p.Free -= delta
		p.TotMelt -= delta
	}
}

func (p *Pack) meltIce(in Input, dtx, dtn float64) float64 {
	var m float64
	m, p.Ice = drawIce(icePotential(p.par, p.SinceSnow, in, dtx, dtn), p.Ice)
	return m
}

// icePotential deposited ice melts at 1.5 times the snow melt rates
// (Braithwaite, 1995) once the pack is gone.
func icePotential(par Params, sinceSnow float64, in Input, dtx, dtn float64) float64 {
	frad := radiationEffect(sinceSnow, in.Sun, in.RadFactor)
	pot := dtx*1.5*par.MeltDay*frad*in.Dur + dtn*1.5*par.MeltNight*in.Dur
	tm := 2./3.*in.Tmax + in.Tmin/3.
	if tm > par.TrainRef {
		pot += 0.0126 * (tm - par.TrainRef) * in.Rain
	}
	return pot
}

// drawIce draws the melt potential from the ice store. Ice holds no free
// water so a negative potential freezes nothing.
func drawIce(pot, ice float64) (melt, rem float64) {
	if pot <= 0. {
		return 0., ice
	}
	if pot >= ice {
		return ice, 0.
	}
	return pot, ice - pot
}

// radiationEffect melt acceleration from surface albedo decay and sunshine,
// scaled by the terrain irradiation factor when one is supplied.
func radiationEffect(sinceSnow, sun, rf float64) float64 {
	if rf <= 0. {
		rf = 1.
	}
	return (1.15 - 0.4*math.Exp(-0.38*sinceSnow)) * math.Pow(sun/0.52, 0.33) * rf
}
